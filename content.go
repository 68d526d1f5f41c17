package main

import (
	"errors"
	"fmt"
)

// Content is everything a page needs in one language.
type Content struct {
	Nav        NavContent        `json:"nav"`
	Hero       HeroContent       `json:"hero"`
	About      AboutContent      `json:"about"`
	Experience ExperienceContent `json:"experience"`
	Projects   ProjectsContent   `json:"projects"`
	Skills     SkillsContent     `json:"skills"`
	Contact    ContactContent    `json:"contact"`
	Privacy    PrivacyContent    `json:"privacy"`
}

// CTA is a button that scrolls to another section.
type CTA struct {
	Label  string  `json:"label"`
	Target Section `json:"target"`
}

type NavContent struct {
	Brand  string             `json:"brand"`
	Labels map[Section]string `json:"labels"`
	CTA    CTA                `json:"cta"`
}

type HeroContent struct {
	Slogan       string `json:"slogan"`
	Title        string `json:"title"`
	Subtitle     string `json:"subtitle"`
	PrimaryCTA   CTA    `json:"primary_cta"`
	SecondaryCTA CTA    `json:"secondary_cta"`
	ImageURL     string `json:"image_url"`
	ImageAlt     string `json:"image_alt"`
}

type Stat struct {
	Number string `json:"number"`
	Label  string `json:"label"`
}

type Strength struct {
	Key         string `json:"key"`
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type AboutContent struct {
	Title      string     `json:"title"`
	Subtitle   string     `json:"subtitle"`
	Paragraphs []string   `json:"paragraphs"`
	CTA        CTA        `json:"cta"`
	Stats      []Stat     `json:"stats"`
	Strengths  []Strength `json:"strengths"`
	ImageURL   string     `json:"image_url"`
	ImageAlt   string     `json:"image_alt"`
}

type Experience struct {
	Title        string   `json:"title"`
	Period       string   `json:"period"`
	Achievements []string `json:"achievements"`
}

type ExperienceContent struct {
	Title string       `json:"title"`
	CTA   CTA          `json:"cta"`
	Items []Experience `json:"items"`
}

type Project struct {
	Name        string `json:"name"`
	Year        string `json:"year"`
	Description string `json:"description"`
	Result      string `json:"result"`
	CTA         string `json:"cta"`
	ImageURL    string `json:"image_url"`
}

type ProjectsContent struct {
	Title       string    `json:"title"`
	ResultLabel string    `json:"result_label"`
	Items       []Project `json:"items"`
}

type Skill struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Level       int    `json:"level"`
	Icon        string `json:"icon"`
}

type SkillsContent struct {
	Title string  `json:"title"`
	CTA   CTA     `json:"cta"`
	Items []Skill `json:"items"`
}

type FormLabels struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
	Submit  string `json:"submit"`
}

type ContactContent struct {
	Title        string     `json:"title"`
	Subtitle     string     `json:"subtitle"`
	EmailHeading string     `json:"email_heading"`
	Form         FormLabels `json:"form"`
	ImageURL     string     `json:"image_url"`
	ImageAlt     string     `json:"image_alt"`

	SuccessTitle   string `json:"success_title"`
	SuccessMessage string `json:"success_message"`
	ErrorTitle     string `json:"error_title"`
	ErrorMessage   string `json:"error_message"`
	InvalidEmail   string `json:"invalid_email"`
	TooLong        string `json:"too_long"`
	RateLimited    string `json:"rate_limited"`
	SendFailed     string `json:"send_failed"`
}

type PrivacyContent struct {
	Title      string   `json:"title"`
	Paragraphs []string `json:"paragraphs"`
	Back       string   `json:"back"`
}

// ContentFor returns the dictionary for lang, falling back to the default.
func ContentFor(lang Lang) Content {
	if c, ok := siteContent[lang]; ok {
		return c
	}
	return siteContent[DefaultLang]
}

// validateContent checks that every language carries the same shape of
// content, so switching language never drops a section or list entry.
func validateContent(dict map[Lang]Content) error {
	var errs []error
	for _, l := range Langs {
		if _, ok := dict[l]; !ok {
			errs = append(errs, fmt.Errorf("language %q: no content", l))
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	base := dict[DefaultLang]
	for _, l := range Langs {
		c := dict[l]
		for _, s := range Sections {
			if c.Nav.Labels[s] == "" {
				errs = append(errs, fmt.Errorf("language %q: no nav label for %q", l, s))
			}
		}
		lengths := []struct {
			name      string
			got, want int
		}{
			{"about.paragraphs", len(c.About.Paragraphs), len(base.About.Paragraphs)},
			{"about.stats", len(c.About.Stats), len(base.About.Stats)},
			{"about.strengths", len(c.About.Strengths), len(base.About.Strengths)},
			{"experience.items", len(c.Experience.Items), len(base.Experience.Items)},
			{"projects.items", len(c.Projects.Items), len(base.Projects.Items)},
			{"skills.items", len(c.Skills.Items), len(base.Skills.Items)},
			{"privacy.paragraphs", len(c.Privacy.Paragraphs), len(base.Privacy.Paragraphs)},
		}
		for _, n := range lengths {
			if n.got != n.want {
				errs = append(errs, fmt.Errorf("language %q: %s has %d entries, %q has %d", l, n.name, n.got, DefaultLang, n.want))
			}
		}
		for _, cta := range []CTA{c.Nav.CTA, c.Hero.PrimaryCTA, c.Hero.SecondaryCTA, c.About.CTA, c.Experience.CTA, c.Skills.CTA} {
			if !IsSection(string(cta.Target)) {
				errs = append(errs, fmt.Errorf("language %q: CTA %q targets unknown section %q", l, cta.Label, cta.Target))
			}
		}
		for _, sk := range c.Skills.Items {
			if sk.Level < 0 || sk.Level > 100 {
				errs = append(errs, fmt.Errorf("language %q: skill %q level %d out of range", l, sk.Name, sk.Level))
			}
		}
		if c.Contact.ErrorMessage == "" || c.Contact.SuccessMessage == "" {
			errs = append(errs, fmt.Errorf("language %q: contact toast messages missing", l))
		}
	}
	return errors.Join(errs...)
}
