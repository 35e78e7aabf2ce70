// Package rules implements the field-level validation rules that gate
// candidate data entry. Each rule is an immutable value configured at
// construction time; two rules with identical configuration are
// interchangeable and compare equal. Rules are pure: the same input and
// configuration always yield the same outcome, with no side effects.
package rules

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// Rejection reasons with fixed configuration-independent wording.
var (
	ErrUnsupportedFileType = errors.New("only PDF and DOCX files are allowed")
	ErrInvalidDateOfBirth  = errors.New("please provide a valid date of birth")
	ErrInvalidPhoneNumber  = errors.New("invalid phone number format, use E.164 format")
)

// FileMeta describes an uploaded file as far as validation is
// concerned. A zero Size or empty ContentType stands for an absent
// attribute, which the corresponding rule accepts vacuously.
type FileMeta struct {
	Size        int64
	ContentType string
}

// FileSizeRule rejects files larger than a configured number of
// megabytes.
type FileSizeRule struct {
	MaxSizeMB int
}

// NewFileSizeRule returns a FileSizeRule with the given limit.
func NewFileSizeRule(maxSizeMB int) FileSizeRule {
	return FileSizeRule{MaxSizeMB: maxSizeMB}
}

// Validate accepts the file when its size is within the limit. Files
// with no size attribute are accepted.
func (r FileSizeRule) Validate(f FileMeta) error {
	if f.Size == 0 {
		return nil
	}
	if f.Size > int64(r.MaxSizeMB)*1024*1024 {
		return fmt.Errorf("file size cannot exceed %d MB", r.MaxSizeMB)
	}
	return nil
}

// FileTypeRule rejects files whose declared content type is not in the
// allowed set.
type FileTypeRule struct {
	AllowedTypes []string
}

// NewFileTypeRule returns a FileTypeRule restricted to the given mime
// types. With no types it defaults to PDF and DOCX.
func NewFileTypeRule(allowedTypes ...string) FileTypeRule {
	if len(allowedTypes) == 0 {
		allowedTypes = []string{
			"application/pdf",
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		}
	}
	return FileTypeRule{AllowedTypes: allowedTypes}
}

// Validate accepts the file when its content type is allowed. Files
// with no declared content type are accepted.
func (r FileTypeRule) Validate(f FileMeta) error {
	if f.ContentType == "" {
		return nil
	}
	for _, t := range r.AllowedTypes {
		if f.ContentType == t {
			return nil
		}
	}
	return ErrUnsupportedFileType
}

// Equal reports whether two FileTypeRules carry the same configuration.
// FileTypeRule holds a slice, so == is unavailable; the other rules
// compare with == directly.
func (r FileTypeRule) Equal(other FileTypeRule) bool {
	if len(r.AllowedTypes) != len(other.AllowedTypes) {
		return false
	}
	for i, t := range r.AllowedTypes {
		if other.AllowedTypes[i] != t {
			return false
		}
	}
	return true
}

// AgeRule rejects dates of birth that put the candidate's age outside
// the configured inclusive bounds.
type AgeRule struct {
	MinAge int
	MaxAge int
}

// NewAgeRule returns an AgeRule with the given inclusive bounds.
func NewAgeRule(minAge, maxAge int) AgeRule {
	return AgeRule{MinAge: minAge, MaxAge: maxAge}
}

// Validate accepts the date of birth when the derived age is within
// bounds. A zero time stands for an absent value and is accepted.
// Both bounds are enforced even though the upper-bound wording covers
// most rejections in practice.
func (r AgeRule) Validate(dob time.Time) error {
	if dob.IsZero() {
		return nil
	}
	age := Age(dob, time.Now().UTC())
	if age < r.MinAge {
		return fmt.Errorf("candidate must be at least %d years old", r.MinAge)
	}
	if age > r.MaxAge {
		return ErrInvalidDateOfBirth
	}
	return nil
}

// Age computes the whole-year age at the given date: the year
// difference, minus one when the (month, day) of the reference date
// falls before the birthday's.
func Age(dob, on time.Time) int {
	age := on.Year() - dob.Year()
	if on.Month() < dob.Month() || (on.Month() == dob.Month() && on.Day() < dob.Day()) {
		age--
	}
	return age
}

// ExperienceRule rejects years of experience outside the configured
// inclusive bounds.
type ExperienceRule struct {
	MinYears int
	MaxYears int
}

// NewExperienceRule returns an ExperienceRule with the given bounds.
func NewExperienceRule(minYears, maxYears int) ExperienceRule {
	return ExperienceRule{MinYears: minYears, MaxYears: maxYears}
}

// Validate accepts the value when it is within bounds.
func (r ExperienceRule) Validate(years int) error {
	if years < r.MinYears {
		return fmt.Errorf("years of experience cannot be less than %d", r.MinYears)
	}
	if years > r.MaxYears {
		return fmt.Errorf("years of experience cannot exceed %d", r.MaxYears)
	}
	return nil
}

// phonePattern matches an optional leading "+", a first digit 1-9, and
// 1 to 14 further digits: 2 to 15 digits total, never starting with 0.
var phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

// PhoneRule rejects strings that are not E.164-like phone numbers. It
// has no configuration; all instances compare equal.
type PhoneRule struct{}

// NewPhoneRule returns a PhoneRule.
func NewPhoneRule() PhoneRule {
	return PhoneRule{}
}

// Validate accepts non-empty strings matching the phone pattern.
func (PhoneRule) Validate(value string) error {
	if value == "" || !phonePattern.MatchString(value) {
		return ErrInvalidPhoneNumber
	}
	return nil
}

// Pre-configured rules with the defaults the registration workflow uses.
var (
	FileSize   = NewFileSizeRule(5)
	FileType   = NewFileTypeRule()
	AgeBounds  = NewAgeRule(16, 100)
	Experience = NewExperienceRule(0, 50)
	Phone      = NewPhoneRule()
)
