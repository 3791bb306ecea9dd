package services

import (
	"strings"
	"time"
	"unicode"

	"github.com/amwangi254/certihub/models"
)

// FieldSubject carries everything a template field may reference for one
// certificate: the student, the course, the generated number and the issue
// date.
type FieldSubject struct {
	Student           models.Student
	Course            models.Course
	CertificateNumber string
	IssueDate         time.Time
}

// canonicalKey lowercases a field name and strips underscores, hyphens and
// whitespace, so "Student Name", "student_name" and "studentName" all meet
// at "studentname".
func canonicalKey(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if r == '_' || r == '-' || unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// fieldAccessors is the static canonical-key table. Adding a recognized
// name means adding one row here; everything else resolves to "".
var fieldAccessors = map[string]func(FieldSubject) string{
	"studentname": func(s FieldSubject) string { return s.Student.FullName() },
	"fullname":    func(s FieldSubject) string { return s.Student.FullName() },
	"name":        func(s FieldSubject) string { return s.Student.FullName() },

	"coursename": func(s FieldSubject) string { return s.Course.Name },
	"course":     func(s FieldSubject) string { return s.Course.Name },

	"issuedate": func(s FieldSubject) string { return s.IssueDate.Format("January 2, 2006") },
	"date":      func(s FieldSubject) string { return s.IssueDate.Format("January 2, 2006") },

	"certificatenumber": func(s FieldSubject) string { return s.CertificateNumber },
	"certificateno":     func(s FieldSubject) string { return s.CertificateNumber },
	"number":            func(s FieldSubject) string { return s.CertificateNumber },

	"studentemail": func(s FieldSubject) string { return s.Student.Email },
	"email":        func(s FieldSubject) string { return s.Student.Email },

	"nationalid": func(s FieldSubject) string { return derefOrEmpty(s.Student.NationalID) },
	"nid":        func(s FieldSubject) string { return derefOrEmpty(s.Student.NationalID) },

	"passportnumber": func(s FieldSubject) string { return derefOrEmpty(s.Student.PassportNumber) },
	"passport":       func(s FieldSubject) string { return derefOrEmpty(s.Student.PassportNumber) },
}

// ResolveFieldValues maps each field's free-text name to a concrete value.
// Unrecognized names resolve to the empty string; the renderers skip empty
// values, so an unknown field means "nothing to draw", not an error.
func ResolveFieldValues(fields models.TemplateFields, subject FieldSubject) map[string]string {
	values := make(map[string]string, len(fields))
	for _, f := range fields {
		if accessor, ok := fieldAccessors[canonicalKey(f.Name)]; ok {
			values[f.Name] = accessor(subject)
		} else {
			values[f.Name] = ""
		}
	}
	return values
}
