// Package profile holds the candidate contact record in its two accepted shapes and
// the extractors that build it from résumé text.
package profile

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// PersonalInfo is either a BasicProfile or a ComprehensiveProfile. Scoring only sees
// the normalized BasicProfile.
type PersonalInfo interface {
	Basic() BasicProfile
}

// BasicProfile is the flat contact record.
type BasicProfile struct {
	Name        string `json:"name" mapstructure:"name"`
	Email       string `json:"email" mapstructure:"email"`
	PhoneNumber string `json:"phone_number" mapstructure:"phone_number"`
	Province    string `json:"province" mapstructure:"province"`
	MajorCity   string `json:"major_city" mapstructure:"major_city"`
}

// Basic implements PersonalInfo.
func (p BasicProfile) Basic() BasicProfile {
	return BasicProfile{
		Name:        strings.TrimSpace(p.Name),
		Email:       strings.TrimSpace(p.Email),
		PhoneNumber: strings.TrimSpace(p.PhoneNumber),
		Province:    strings.ToLower(strings.TrimSpace(p.Province)),
		MajorCity:   strings.ToLower(strings.TrimSpace(p.MajorCity)),
	}
}

// Contact is the nested contact block of a ComprehensiveProfile.
type Contact struct {
	Name        string `json:"name" mapstructure:"name"`
	Email       string `json:"email" mapstructure:"email"`
	Phone       string `json:"phone" mapstructure:"phone"`
	PhoneNumber string `json:"phone_number" mapstructure:"phone_number"`
	Location    string `json:"location" mapstructure:"location"`
	Province    string `json:"province" mapstructure:"province"`
	MajorCity   string `json:"major_city" mapstructure:"major_city"`
	LinkedIn    string `json:"linkedin" mapstructure:"linkedin"`
	GitHub      string `json:"github" mapstructure:"github"`
	Website     string `json:"website" mapstructure:"website"`
}

// ComprehensiveProfile is the nested record produced by structured résumé parsing.
// Top-level contact fields win over the nested ones.
type ComprehensiveProfile struct {
	Name        string  `json:"name,omitempty" mapstructure:"name"`
	Email       string  `json:"email,omitempty" mapstructure:"email"`
	PhoneNumber string  `json:"phone_number,omitempty" mapstructure:"phone_number"`
	Province    string  `json:"province,omitempty" mapstructure:"province"`
	MajorCity   string  `json:"major_city,omitempty" mapstructure:"major_city"`
	Contact     Contact `json:"personal_info" mapstructure:"personal_info"`

	Summary        string   `json:"summary" mapstructure:"summary"`
	Skills         []string `json:"skills" mapstructure:"skills"`
	Certifications []string `json:"certifications" mapstructure:"certifications"`
	Languages      []string `json:"languages" mapstructure:"languages"`
	Awards         []string `json:"awards" mapstructure:"awards"`
}

// Basic implements PersonalInfo.
func (p ComprehensiveProfile) Basic() BasicProfile {
	b := BasicProfile{
		Name:        firstNonEmpty(p.Name, p.Contact.Name),
		Email:       firstNonEmpty(p.Email, p.Contact.Email),
		PhoneNumber: firstNonEmpty(p.PhoneNumber, p.Contact.PhoneNumber, p.Contact.Phone),
		Province:    firstNonEmpty(p.Province, p.Contact.Province),
		MajorCity:   firstNonEmpty(p.MajorCity, p.Contact.MajorCity),
	}
	if b.Province == "" || b.MajorCity == "" {
		province, city := ParseLocation(p.Contact.Location)
		if b.Province == "" {
			b.Province = province
		}
		if b.MajorCity == "" {
			b.MajorCity = city
		}
	}
	return b.Basic()
}

// Decode builds a PersonalInfo from a loosely typed record. A map-valued
// "personal_info" key selects ComprehensiveProfile. Fields that fail to decode are
// left empty and reported in the returned error; the profile is always usable.
func Decode(raw map[string]any) (PersonalInfo, error) {
	if raw == nil {
		return BasicProfile{}, nil
	}

	if _, nested := raw["personal_info"].(map[string]any); nested {
		var p ComprehensiveProfile
		err := decode(raw, &p)
		return p, err
	}

	var p BasicProfile
	err := decode(raw, &p)
	return p, err
}

func decode(raw map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("create profile decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("decode profile: %w", err)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
