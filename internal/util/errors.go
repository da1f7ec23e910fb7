package util

import "errors"

var (
	ErrEmailRegistered       = errors.New("email already registered")
	ErrStudentNumberTaken    = errors.New("student number already in use")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrPendingApproval       = errors.New("account pending approval")
	ErrStudentNotFound       = errors.New("student not found")
	ErrSubjectNotFound       = errors.New("subject not found")
	ErrAssessmentNotFound    = errors.New("assessment not found")
	ErrAssessmentUnavailable = errors.New("assessment not published or inactive")
	ErrQuestionNotFound      = errors.New("question not found")
	ErrChoiceNotFound        = errors.New("choice not found")
	ErrResultNotFound        = errors.New("result not found")
	ErrAttendanceNotFound    = errors.New("attendance record not found")
	ErrAnswerNotFound        = errors.New("answer not found")
	ErrAlreadySubmitted      = errors.New("assessment already taken")
	ErrEmptyQuestionSet      = errors.New("question set is empty or malformed")
)
