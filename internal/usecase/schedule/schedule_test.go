package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/identity"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/memory"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type fixture struct {
	store  *memory.Store
	deps   Deps
	doctor models.Doctor
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := memory.New()
	doc := store.AddDoctor(models.Doctor{UserID: 20, FirstName: "Ana", LastName: "Ruiz"})
	return fixture{
		store:  store,
		doctor: doc,
		deps: Deps{
			Tx:        store,
			Templates: store,
			Slots:     store,
			Doctors:   store,
		},
	}
}

func (f fixture) template(t *testing.T, name string, days []int, start, end string) *models.ScheduleTemplate {
	t.Helper()
	tpl, err := NewManageTemplates(f.deps).Create(context.Background(), domain.TemplateInput{
		Name: name, Weekdays: days, StartTime: start, EndTime: end,
	})
	require.NoError(t, err)
	return tpl
}

func TestAssignTemplateCreatesSlots(t *testing.T) {
	f := newFixture(t)
	tpl := f.template(t, "Early", []int{1, 3, 5}, "08:00", "09:00")

	slots, err := NewAssignTemplate(f.deps).Execute(context.Background(), AssignTemplateInput{
		TemplateID: tpl.ID, DoctorID: f.doctor.ID, ActorID: 1,
	})
	require.NoError(t, err)
	require.Len(t, slots, 6)
	for _, s := range slots {
		assert.NotZero(t, s.ID)
		assert.Equal(t, "available", s.Status)
	}

	stored, err := f.store.ListDoctorSlots(context.Background(), f.doctor.ID, nil)
	require.NoError(t, err)
	assert.Len(t, stored, 6)
}

func TestAssignTemplateRejectsOverlap(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.template(t, "A", []int{1}, "08:00", "10:00")
	b := f.template(t, "B", []int{1}, "09:00", "11:00")

	uc := NewAssignTemplate(f.deps)
	_, err := uc.Execute(ctx, AssignTemplateInput{TemplateID: a.ID, DoctorID: f.doctor.ID})
	require.NoError(t, err)

	_, err = uc.Execute(ctx, AssignTemplateInput{TemplateID: b.ID, DoctorID: f.doctor.ID})
	ce, ok := httperr.AsConflict(err)
	require.True(t, ok)
	conflicts := ce.Details.([]domain.Conflict)
	require.NotEmpty(t, conflicts)
	assert.Equal(t, "A", conflicts[0].Existing.TemplateName)
	assert.Equal(t, "B", conflicts[0].Candidate.TemplateName)

	fromB, err := f.store.ListDoctorSlots(ctx, f.doctor.ID, &b.ID)
	require.NoError(t, err)
	assert.Empty(t, fromB)
}

func TestAssignSameTemplateTwiceConflicts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.template(t, "A", []int{2}, "08:00", "09:00")

	uc := NewAssignTemplate(f.deps)
	_, err := uc.Execute(ctx, AssignTemplateInput{TemplateID: a.ID, DoctorID: f.doctor.ID})
	require.NoError(t, err)

	_, err = uc.Execute(ctx, AssignTemplateInput{TemplateID: a.ID, DoctorID: f.doctor.ID})
	_, ok := httperr.AsConflict(err)
	assert.True(t, ok)

	all, _ := f.store.ListDoctorSlots(ctx, f.doctor.ID, nil)
	assert.Len(t, all, 2)
}

func TestAssignTemplateBadIDs(t *testing.T) {
	f := newFixture(t)
	tpl := f.template(t, "A", []int{1}, "08:00", "09:00")
	uc := NewAssignTemplate(f.deps)

	_, err := uc.Execute(context.Background(), AssignTemplateInput{})
	ve, ok := httperr.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "template_id")
	assert.Contains(t, ve.Fields, "doctor_id")

	_, err = uc.Execute(context.Background(), AssignTemplateInput{TemplateID: tpl.ID, DoctorID: 999})
	ve, ok = httperr.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "does not exist", ve.Fields["doctor_id"])

	_, err = uc.Execute(context.Background(), AssignTemplateInput{TemplateID: 999, DoctorID: f.doctor.ID})
	ve, ok = httperr.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "does not exist", ve.Fields["template_id"])
}

func TestCheckConflictsWritesNothing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.template(t, "A", []int{1}, "08:00", "10:00")
	b := f.template(t, "B", []int{1}, "09:00", "11:00")

	conflicts, err := NewCheckConflicts(f.deps).Execute(ctx, AssignTemplateInput{TemplateID: a.ID, DoctorID: f.doctor.ID})
	require.NoError(t, err)
	assert.NotNil(t, conflicts)
	assert.Empty(t, conflicts)

	_, err = NewAssignTemplate(f.deps).Execute(ctx, AssignTemplateInput{TemplateID: a.ID, DoctorID: f.doctor.ID})
	require.NoError(t, err)

	conflicts, err = NewCheckConflicts(f.deps).Execute(ctx, AssignTemplateInput{TemplateID: b.ID, DoctorID: f.doctor.ID})
	require.NoError(t, err)
	assert.Len(t, conflicts, 2)

	all, _ := f.store.ListDoctorSlots(ctx, f.doctor.ID, nil)
	assert.Len(t, all, 4)
}

func TestUnassignTemplateDeletesOnlyThatAssignment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	other := f.store.AddDoctor(models.Doctor{UserID: 21, FirstName: "Luis", LastName: "Paz"})
	a := f.template(t, "A", []int{1, 2}, "08:00", "09:00")
	b := f.template(t, "B", []int{3}, "08:00", "09:00")

	assign := NewAssignTemplate(f.deps)
	for _, in := range []AssignTemplateInput{
		{TemplateID: a.ID, DoctorID: f.doctor.ID},
		{TemplateID: b.ID, DoctorID: f.doctor.ID},
		{TemplateID: a.ID, DoctorID: other.ID},
	} {
		_, err := assign.Execute(ctx, in)
		require.NoError(t, err)
	}

	deleted, err := NewUnassignTemplate(f.deps).Execute(ctx, UnassignTemplateInput{TemplateID: a.ID, DoctorID: f.doctor.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(4), deleted)

	mine, _ := f.store.ListDoctorSlots(ctx, f.doctor.ID, nil)
	assert.Len(t, mine, 2)
	theirs, _ := f.store.ListDoctorSlots(ctx, other.ID, nil)
	assert.Len(t, theirs, 4)
}

func TestTemplateUpdateAndDeleteWhileAssigned(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	tpl := f.template(t, "A", []int{1}, "08:00", "09:00")
	manage := NewManageTemplates(f.deps)

	_, err := NewAssignTemplate(f.deps).Execute(ctx, AssignTemplateInput{TemplateID: tpl.ID, DoctorID: f.doctor.ID})
	require.NoError(t, err)

	renamed, err := manage.Update(ctx, tpl.ID, domain.TemplateInput{Name: "Mondays", Weekdays: []int{1}, StartTime: "08:00", EndTime: "09:00"})
	require.NoError(t, err)
	assert.Equal(t, "Mondays", renamed.Name)

	_, err = manage.Update(ctx, tpl.ID, domain.TemplateInput{Name: "Mondays", Weekdays: []int{1}, StartTime: "08:00", EndTime: "10:00"})
	assert.True(t, httperr.IsBusiness(err, "template_assigned"))

	assert.True(t, httperr.IsBusiness(manage.Delete(ctx, tpl.ID), "template_assigned"))

	_, err = NewUnassignTemplate(f.deps).Execute(ctx, UnassignTemplateInput{TemplateID: tpl.ID, DoctorID: f.doctor.ID})
	require.NoError(t, err)
	require.NoError(t, manage.Delete(ctx, tpl.ID))

	n, err := manage.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.True(t, httperr.IsNotFound(manage.Delete(ctx, tpl.ID)))
}

func TestRenameAssignedTemplateIgnoresWeekdayOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	tpl := f.template(t, "A", []int{1, 3}, "08:00", "09:00")

	_, err := NewAssignTemplate(f.deps).Execute(ctx, AssignTemplateInput{TemplateID: tpl.ID, DoctorID: f.doctor.ID})
	require.NoError(t, err)

	renamed, err := NewManageTemplates(f.deps).Update(ctx, tpl.ID, domain.TemplateInput{
		Name: "Mon and Wed", Weekdays: []int{3, 1}, StartTime: "08:00", EndTime: "09:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "Mon and Wed", renamed.Name)
	assert.Equal(t, []int{1, 3}, renamed.Weekdays)
}

func TestListDoctorSlotsScopesByCaller(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	other := f.store.AddDoctor(models.Doctor{UserID: 21, FirstName: "Luis", LastName: "Paz"})
	a := f.template(t, "A", []int{1}, "08:00", "09:00")
	b := f.template(t, "B", []int{1}, "14:00", "15:00")
	assign := NewAssignTemplate(f.deps)
	_, err := assign.Execute(ctx, AssignTemplateInput{TemplateID: a.ID, DoctorID: f.doctor.ID})
	require.NoError(t, err)
	_, err = assign.Execute(ctx, AssignTemplateInput{TemplateID: b.ID, DoctorID: f.doctor.ID})
	require.NoError(t, err)

	uc := NewListDoctorSlots(f.deps)
	doctor := identity.Caller{UserID: 20, Role: identity.RoleDoctor, DoctorID: &f.doctor.ID}

	mine, err := uc.Execute(ctx, doctor, ListDoctorSlotsInput{DoctorID: other.ID})
	require.NoError(t, err)
	assert.Len(t, mine, 4)

	admin := identity.Caller{UserID: 1, Role: identity.RoleAdmin}
	filtered, err := uc.Execute(ctx, admin, ListDoctorSlotsInput{DoctorID: f.doctor.ID, TemplateID: &b.ID})
	require.NoError(t, err)
	assert.Len(t, filtered, 2)

	_, err = uc.Execute(ctx, admin, ListDoctorSlotsInput{DoctorID: 999})
	assert.True(t, httperr.IsNotFound(err))

	_, err = uc.Execute(ctx, identity.Caller{Role: identity.RolePatient}, ListDoctorSlotsInput{DoctorID: f.doctor.ID})
	assert.True(t, httperr.IsNotFound(err))

	days, err := NewCompactSchedule(f.deps).Execute(ctx, doctor, 0)
	require.NoError(t, err)
	assert.Equal(t, []domain.CompactDay{{Weekday: 1, Ranges: []string{"08:00 - 09:00", "14:00 - 15:00"}}}, days)
}
