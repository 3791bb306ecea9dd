package services

import (
	"testing"
	"time"

	"github.com/amwangi254/certihub/models"
)

func testSubject() FieldSubject {
	nid := "12345678"
	return FieldSubject{
		Student: models.Student{
			FirstName:  "Jane",
			LastName:   "Doe",
			Email:      "jane.doe@example.com",
			NationalID: &nid,
		},
		Course:            models.Course{Name: "Advanced Widget Assembly"},
		CertificateNumber: "CERT-2026-ABC123",
		IssueDate:         time.Date(2026, time.August, 28, 0, 0, 0, 0, time.UTC),
	}
}

func TestCanonicalKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"studentName", "studentname"},
		{"student_name", "studentname"},
		{"Student Name", "studentname"},
		{"STUDENT-NAME", "studentname"},
		{"  issue date ", "issuedate"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := canonicalKey(tt.in); got != tt.want {
			t.Errorf("canonicalKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolveFieldValues(t *testing.T) {
	subject := testSubject()

	tests := []struct {
		name string
		want string
	}{
		{"studentName", "Jane Doe"},
		{"student_name", "Jane Doe"},
		{"Student Name", "Jane Doe"},
		{"fullName", "Jane Doe"},
		{"courseName", "Advanced Widget Assembly"},
		{"course", "Advanced Widget Assembly"},
		{"issueDate", "August 28, 2026"},
		{"date", "August 28, 2026"},
		{"certificateNumber", "CERT-2026-ABC123"},
		{"number", "CERT-2026-ABC123"},
		{"studentEmail", "jane.doe@example.com"},
		{"national_id", "12345678"},
		// Absent optional attribute resolves to empty, not an error.
		{"passportNumber", ""},
		// Unrecognized names resolve to exactly the empty string.
		{"unknownField", ""},
		{"favourite_colour", ""},
	}

	for _, tt := range tests {
		fields := models.TemplateFields{{ID: "f1", Name: tt.name}}
		values := ResolveFieldValues(fields, subject)
		if got, ok := values[tt.name]; !ok || got != tt.want {
			t.Errorf("resolve %q = %q (present=%v), want %q", tt.name, got, ok, tt.want)
		}
	}
}

func TestResolveFieldValuesKeysByOriginalName(t *testing.T) {
	fields := models.TemplateFields{
		{ID: "a", Name: "Student Name"},
		{ID: "b", Name: "unknown"},
	}
	values := ResolveFieldValues(fields, testSubject())

	if len(values) != 2 {
		t.Fatalf("expected one entry per field, got %d", len(values))
	}
	// The map is keyed by the field's original free-text name, since that
	// is what the renderers look up.
	if values["Student Name"] != "Jane Doe" {
		t.Errorf("expected original-name key, got %v", values)
	}
}
