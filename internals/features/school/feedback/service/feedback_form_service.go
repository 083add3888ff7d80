package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolhub_backend/internals/constants"
	academics "schoolhub_backend/internals/features/school/academics/model"
	dto "schoolhub_backend/internals/features/school/feedback/dto"
	m "schoolhub_backend/internals/features/school/feedback/model"
	usermodel "schoolhub_backend/internals/features/users/user/model"
)

/* ================== FORM BUILDER ================== */

// GetStudentFeedbackForms computes the pending/completed feedback forms for a
// student: every (term, course-with-valid-teacher) pair for the student's
// class, annotated with whether the slot has a submission already. Forms are
// computed, never stored.
func (s *FeedbackService) GetStudentFeedbackForms(ctx context.Context, studentID uuid.UUID, termID *uuid.UUID) (dto.StudentFeedbackFormsResponse, error) {
	empty := dto.StudentFeedbackFormsResponse{
		Forms:     []dto.FeedbackForm{},
		Questions: []dto.FeedbackQuestionResponse{},
	}

	var student academics.StudentModel
	err := s.DB.WithContext(ctx).Where("student_id = ?", studentID).First(&student).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return empty, fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Student with ID %s not found", studentID))
	}
	if err != nil {
		return empty, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch student")
	}

	// no class assignment: nothing to evaluate, not an error
	if student.StudentClassID == nil {
		return empty, nil
	}

	questions, err := s.ListQuestions(ctx, false)
	if err != nil {
		return empty, err
	}

	var class academics.ClassModel
	err = s.DB.WithContext(ctx).Where("class_id = ?", *student.StudentClassID).First(&class).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return empty, nil
	}
	if err != nil {
		return empty, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch class")
	}

	var classCourses []academics.ClassCourseModel
	if err := s.DB.WithContext(ctx).
		Where("class_course_class_id = ?", class.ClassID).
		Find(&classCourses).Error; err != nil {
		return empty, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch class courses")
	}
	if len(classCourses) == 0 {
		return empty, nil
	}

	terms, err := s.fetchTerms(ctx, termID)
	if err != nil {
		return empty, err
	}
	if len(terms) == 0 {
		return empty, nil
	}

	courseIDs := make([]uuid.UUID, 0, len(classCourses))
	for _, cc := range classCourses {
		courseIDs = append(courseIDs, cc.ClassCourseCourseID)
	}
	var courses []academics.CourseModel
	if err := s.DB.WithContext(ctx).Where("course_id IN ?", courseIDs).Find(&courses).Error; err != nil {
		return empty, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch courses")
	}

	teacherMap, teacherNames, err := s.fetchTeachers(ctx, courses)
	if err != nil {
		return empty, err
	}

	submissionSet, err := s.fetchSubmissionSet(ctx, studentID, terms)
	if err != nil {
		return empty, err
	}

	// term (outer) x course (inner), iteration order of the fetched collections
	forms := make([]dto.FeedbackForm, 0, len(terms)*len(courses))
	for _, term := range terms {
		for _, course := range courses {
			if course.CourseTeacherID == nil {
				continue
			}
			teacher, ok := teacherMap[*course.CourseTeacherID]
			if !ok {
				// missing or non-teacher staff: silently excluded
				continue
			}
			key := submissionKey(teacher.StaffID, course.CourseID, class.ClassID, term.TermID)
			forms = append(forms, dto.FeedbackForm{
				StaffID:     teacher.StaffID,
				TeacherName: teacherNames[teacher.StaffID],
				StaffCode:   teacher.StaffCode,
				CourseID:    course.CourseID,
				CourseName:  course.CourseTitle,
				ClassID:     class.ClassID,
				ClassCode:   class.ClassName,
				TermID:      term.TermID,
				IsSubmitted: submissionSet[key],
			})
		}
	}

	questionDTOs := make([]dto.FeedbackQuestionResponse, 0, len(questions))
	for _, q := range questions {
		questionDTOs = append(questionDTOs, dto.FromQuestionModel(q))
	}

	return dto.StudentFeedbackFormsResponse{Forms: forms, Questions: questionDTOs}, nil
}

func (s *FeedbackService) fetchTerms(ctx context.Context, termID *uuid.UUID) ([]academics.TermModel, error) {
	q := s.DB.WithContext(ctx).Model(&academics.TermModel{})
	if termID != nil {
		q = q.Where("term_id = ?", *termID)
	}
	var terms []academics.TermModel
	if err := q.Find(&terms).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch terms")
	}
	return terms, nil
}

// fetchTeachers loads the staff rows for each course's teacher, keeps only
// staff with the TEACHER role, and resolves their display names.
func (s *FeedbackService) fetchTeachers(ctx context.Context, courses []academics.CourseModel) (map[uuid.UUID]academics.StaffModel, map[uuid.UUID]string, error) {
	teacherIDs := make([]uuid.UUID, 0, len(courses))
	for _, c := range courses {
		if c.CourseTeacherID != nil {
			teacherIDs = append(teacherIDs, *c.CourseTeacherID)
		}
	}

	teacherMap := make(map[uuid.UUID]academics.StaffModel)
	teacherNames := make(map[uuid.UUID]string)
	if len(teacherIDs) == 0 {
		return teacherMap, teacherNames, nil
	}

	var staff []academics.StaffModel
	if err := s.DB.WithContext(ctx).Where("staff_id IN ?", teacherIDs).Find(&staff).Error; err != nil {
		return nil, nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch teachers")
	}

	userIDs := make([]uuid.UUID, 0, len(staff))
	for _, st := range staff {
		if st.StaffRole == constants.StaffRoleTeacher {
			teacherMap[st.StaffID] = st
			userIDs = append(userIDs, st.StaffUserID)
		}
	}

	if len(userIDs) > 0 {
		var users []usermodel.UserModel
		if err := s.DB.WithContext(ctx).Where("user_id IN ?", userIDs).Find(&users).Error; err != nil {
			return nil, nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch teacher users")
		}
		nameByUser := make(map[uuid.UUID]string, len(users))
		for _, u := range users {
			nameByUser[u.UserID] = u.UserFullName
		}
		for _, st := range teacherMap {
			name, ok := nameByUser[st.StaffUserID]
			if !ok || name == "" {
				name = "Unknown"
			}
			teacherNames[st.StaffID] = name
		}
	}

	return teacherMap, teacherNames, nil
}

func (s *FeedbackService) fetchSubmissionSet(ctx context.Context, studentID uuid.UUID, terms []academics.TermModel) (map[string]bool, error) {
	termIDs := make([]uuid.UUID, 0, len(terms))
	for _, t := range terms {
		termIDs = append(termIDs, t.TermID)
	}

	var submissions []m.FeedbackSubmissionModel
	if err := s.DB.WithContext(ctx).
		Where("feedback_submission_student_id = ? AND feedback_submission_term_id IN ?", studentID, termIDs).
		Find(&submissions).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch submissions")
	}

	set := make(map[string]bool, len(submissions))
	for _, sub := range submissions {
		key := submissionKey(sub.FeedbackSubmissionStaffID, sub.FeedbackSubmissionCourseID, sub.FeedbackSubmissionClassID, sub.FeedbackSubmissionTermID)
		set[key] = true
	}
	return set, nil
}

func submissionKey(staffID, courseID, classID, termID uuid.UUID) string {
	return staffID.String() + "-" + courseID.String() + "-" + classID.String() + "-" + termID.String()
}

/* ================== READBACK ================== */

// GetSubmittedFeedback returns one slot's answers in the same shape the
// student submitted them, for pre-filling the update form.
func (s *FeedbackService) GetSubmittedFeedback(ctx context.Context, studentID, staffID, courseID, termID uuid.UUID) (dto.SubmittedFeedbackResponse, error) {
	submission, err := s.findSubmission(ctx, studentID, staffID, courseID, termID)
	if err != nil {
		return dto.SubmittedFeedbackResponse{}, err
	}
	if submission == nil {
		return dto.SubmittedFeedbackResponse{}, fiber.NewError(fiber.StatusNotFound,
			"No feedback submission found for this teacher/course combination")
	}

	var responses []m.FeedbackResponseModel
	if err := s.DB.WithContext(ctx).
		Where(`feedback_response_student_id = ?
			AND feedback_response_staff_id = ?
			AND feedback_response_course_id = ?
			AND feedback_response_term_id = ?`,
			studentID, staffID, courseID, termID).
		Find(&responses).Error; err != nil {
		return dto.SubmittedFeedbackResponse{}, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch feedback responses")
	}

	answers := make([]dto.FeedbackAnswer, 0, len(responses))
	for _, r := range responses {
		answers = append(answers, dto.FeedbackAnswer{
			QuestionID:     r.FeedbackResponseQuestionID,
			SelectedOption: r.FeedbackResponseSelectedOption,
		})
	}

	notes := ""
	if submission.FeedbackSubmissionNotes != nil {
		notes = *submission.FeedbackSubmissionNotes
	}

	return dto.SubmittedFeedbackResponse{
		StaffID:     submission.FeedbackSubmissionStaffID,
		CourseID:    submission.FeedbackSubmissionCourseID,
		ClassID:     submission.FeedbackSubmissionClassID,
		TermID:      submission.FeedbackSubmissionTermID,
		Notes:       notes,
		Answers:     answers,
		SubmittedAt: submission.FeedbackSubmissionSubmittedAt,
	}, nil
}

type TeacherFeedbackView struct {
	Responses   []m.FeedbackResponseModel   `json:"responses"`
	Submissions []m.FeedbackSubmissionModel `json:"submissions"`
}

// GetFeedbackResponses is the teacher-side view: every response row and
// submission receipt addressed to the staff member, optionally narrowed by
// course and term.
func (s *FeedbackService) GetFeedbackResponses(ctx context.Context, staffID uuid.UUID, courseID, termID *uuid.UUID) (TeacherFeedbackView, error) {
	respQuery := s.DB.WithContext(ctx).Model(&m.FeedbackResponseModel{}).
		Where("feedback_response_staff_id = ?", staffID)
	subQuery := s.DB.WithContext(ctx).Model(&m.FeedbackSubmissionModel{}).
		Where("feedback_submission_staff_id = ?", staffID)

	if courseID != nil {
		respQuery = respQuery.Where("feedback_response_course_id = ?", *courseID)
		subQuery = subQuery.Where("feedback_submission_course_id = ?", *courseID)
	}
	if termID != nil {
		respQuery = respQuery.Where("feedback_response_term_id = ?", *termID)
		subQuery = subQuery.Where("feedback_submission_term_id = ?", *termID)
	}

	view := TeacherFeedbackView{
		Responses:   []m.FeedbackResponseModel{},
		Submissions: []m.FeedbackSubmissionModel{},
	}
	if err := respQuery.Order("feedback_response_created_at DESC").Find(&view.Responses).Error; err != nil {
		return view, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch feedback responses")
	}
	if err := subQuery.Order("feedback_submission_submitted_at DESC").Find(&view.Submissions).Error; err != nil {
		return view, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch feedback submissions")
	}
	return view, nil
}
