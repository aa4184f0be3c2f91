package dto

import (
	"testing"

	model "presensiku_backend/internals/features/school/classes/classes/model"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestCreateClassRequest_ToModel(t *testing.T) {
	m := CreateClassRequest{
		ClassName:        "  XII IPA 3 ",
		ClassRollNumbers: []string{"10", " 2", "'1'", "2", ""},
		ClassSubjects:    []string{" Matematika ", "", "Fisika"},
	}.ToModel(75)

	assert.Equal(t, "XII IPA 3", m.ClassName)
	assert.Equal(t, pq.StringArray{"1", "2", "10"}, m.ClassRollNumbers)
	assert.Equal(t, 3, m.ClassTotalStudents)
	assert.Equal(t, 75.0, m.ClassMinAttendancePercentage)
	if assert.Len(t, m.Subjects, 2) {
		assert.Equal(t, "Matematika", m.Subjects[0].ClassSubjectName)
	}

	minPct := 80.0
	m = CreateClassRequest{ClassName: "X", ClassTotalStudents: 30, ClassMinAttendancePercentage: &minPct}.ToModel(75)
	assert.Empty(t, m.ClassRollNumbers)
	assert.Equal(t, 30, m.ClassTotalStudents)
	assert.Equal(t, 80.0, m.ClassMinAttendancePercentage)
}

func TestUpdateSettingsRequest_Range(t *testing.T) {
	v := validator.New()
	bad, ok, zero := 120.0, 75.0, 0.0

	assert.Error(t, v.Struct(UpdateSettingsRequest{MinAttendancePercentage: &bad}))
	assert.Error(t, v.Struct(UpdateSettingsRequest{}))
	assert.NoError(t, v.Struct(UpdateSettingsRequest{MinAttendancePercentage: &ok}))
	assert.NoError(t, v.Struct(UpdateSettingsRequest{MinAttendancePercentage: &zero}))
}

func TestUpdateRosterRequest_ToUpdates(t *testing.T) {
	up := UpdateRosterRequest{ClassRollNumbers: []string{"3", "1", "1"}}.ToUpdates()
	assert.Equal(t, pq.StringArray{"1", "3"}, up["class_roll_numbers"])
	assert.Equal(t, 2, up["class_total_students"])

	n := 25
	up = UpdateRosterRequest{ClassTotalStudents: &n}.ToUpdates()
	assert.Equal(t, pq.StringArray{}, up["class_roll_numbers"])
	assert.Equal(t, 25, up["class_total_students"])
}

func TestNewClassResponse_SequentialRoster(t *testing.T) {
	subj := model.ClassSubjectModel{ClassSubjectID: uuid.New(), ClassSubjectName: "Kimia"}
	resp := NewClassResponse(&model.ClassModel{
		ClassName:                    "XI",
		ClassTotalStudents:           3,
		ClassMinAttendancePercentage: 75,
		Subjects:                     []model.ClassSubjectModel{subj},
	})

	assert.Equal(t, []string{"1", "2", "3"}, resp.RollNumbers)
	assert.Equal(t, 3, resp.TotalStudents)
	assert.Equal(t, []SubjectLite{{ID: subj.ClassSubjectID, Name: "Kimia"}}, resp.Subjects)
	assert.Equal(t, 75.0, resp.Settings.MinAttendancePercentage)
}
