// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the content records rendered by the site.
package model

import (
	"strings"
	"time"
)

// Collection is the name of a set of records of one type in the content store.
type Collection string

// Content collections.
const (
	CollectionCoreValues          Collection = "corevalues"
	CollectionCreativeSubjects    Collection = "creativesubjects"
	CollectionGalleryItems        Collection = "galleryitems"
	CollectionPerformanceServices Collection = "performanceservices"
	CollectionStudentTestimonials Collection = "studenttestimonials"
	CollectionSubjectStyles       Collection = "subjectstyles"
	CollectionTeachers            Collection = "teachers"
)

// Collections lists every content collection in a stable order.
var Collections = []Collection{
	CollectionCoreValues,
	CollectionCreativeSubjects,
	CollectionGalleryItems,
	CollectionPerformanceServices,
	CollectionStudentTestimonials,
	CollectionSubjectStyles,
	CollectionTeachers,
}

// ParseCollection returns the collection with the given name.
func ParseCollection(name string) (Collection, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, c := range Collections {
		if string(c) == name {
			return c, true
		}
	}
	return "", false
}

// Record holds the fields every collection shares.
type Record struct {
	ID        string    `json:"_id" yaml:"id" firestore:"-"`
	CreatedAt time.Time `json:"_createdDate" yaml:"-" firestore:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"_updatedDate" yaml:"-" firestore:"updatedAt,omitempty"`
}

// CoreValue is a principle displayed on the home and about pages.
type CoreValue struct {
	Record       `yaml:",inline"`
	Name         string `json:"valueName" yaml:"name" firestore:"valueName"`
	Description  string `json:"description" yaml:"description" firestore:"description"`
	Icon         string `json:"icon,omitempty" yaml:"icon" firestore:"icon"`
	DisplayOrder int    `json:"displayOrder" yaml:"displayOrder" firestore:"displayOrder"`
	IsActive     bool   `json:"isActive" yaml:"isActive" firestore:"isActive"`
}

// CreativeSubject is a taught discipline: music, singing, dance or art.
type CreativeSubject struct {
	Record           `yaml:",inline"`
	Name             string `json:"subjectName" yaml:"name" firestore:"subjectName"`
	Category         string `json:"category" yaml:"category" firestore:"category"`
	HeroImage        string `json:"heroImage,omitempty" yaml:"heroImage" firestore:"heroImage"`
	FamousQuote      string `json:"famousQuote,omitempty" yaml:"famousQuote" firestore:"famousQuote"`
	Description      string `json:"description" yaml:"description" firestore:"description"`
	LearningTimeline string `json:"learningTimeline,omitempty" yaml:"learningTimeline" firestore:"learningTimeline"`
}

// GalleryItem is a media record shown in the gallery.
type GalleryItem struct {
	Record      `yaml:",inline"`
	Title       string    `json:"title" yaml:"title" firestore:"title"`
	Image       string    `json:"image,omitempty" yaml:"image" firestore:"image"`
	Category    string    `json:"category" yaml:"category" firestore:"category"`
	Description string    `json:"description,omitempty" yaml:"description" firestore:"description"`
	DateTaken   time.Time `json:"dateTaken,omitzero" yaml:"dateTaken" firestore:"dateTaken,omitempty"`
}

// PerformanceService is a bookable performance offering.
type PerformanceService struct {
	Record           `yaml:",inline"`
	Name             string `json:"serviceName" yaml:"name" firestore:"serviceName"`
	ShortDescription string `json:"shortDescription,omitempty" yaml:"shortDescription" firestore:"shortDescription"`
	Description      string `json:"description" yaml:"description" firestore:"description"`
	PromotionalImage string `json:"promotionalImage,omitempty" yaml:"promotionalImage" firestore:"promotionalImage"`
	BookingFormURL   string `json:"bookingFormUrl,omitempty" yaml:"bookingFormUrl" firestore:"bookingFormUrl"`
}

// StudentTestimonial is a quote from a student.
type StudentTestimonial struct {
	Record     `yaml:",inline"`
	Name       string `json:"studentName" yaml:"name" firestore:"studentName"`
	Photo      string `json:"studentPhoto,omitempty" yaml:"photo" firestore:"studentPhoto"`
	Course     string `json:"courseStudied" yaml:"course" firestore:"courseStudied"`
	Text       string `json:"testimonialText" yaml:"text" firestore:"testimonialText"`
	IsFeatured bool   `json:"isFeatured" yaml:"isFeatured" firestore:"isFeatured"`
}

// Initial returns the first letter of the student's name, used when no photo is set.
func (t StudentTestimonial) Initial() string {
	for _, r := range strings.TrimSpace(t.Name) {
		return strings.ToUpper(string(r))
	}
	return ""
}

// SubjectStyle is a sub-style within a subject, such as an art technique.
type SubjectStyle struct {
	Record            `yaml:",inline"`
	Name              string `json:"styleName" yaml:"name" firestore:"styleName"`
	ShortSummary      string `json:"shortSummary,omitempty" yaml:"shortSummary" firestore:"shortSummary"`
	Image             string `json:"styleImage,omitempty" yaml:"image" firestore:"styleImage"`
	Description       string `json:"description,omitempty" yaml:"description" firestore:"description"`
	EnrollmentFormURL string `json:"enrollmentFormUrl,omitempty" yaml:"enrollmentFormUrl" firestore:"enrollmentFormUrl"`
}

// Teacher is a staff profile.
type Teacher struct {
	Record         `yaml:",inline"`
	Name           string `json:"teacherName" yaml:"name" firestore:"teacherName"`
	Photo          string `json:"photo,omitempty" yaml:"photo" firestore:"photo"`
	Specialization string `json:"specialization" yaml:"specialization" firestore:"specialization"`
	Bio            string `json:"bio" yaml:"bio" firestore:"bio"`
	Achievements   string `json:"experienceAndAchievements,omitempty" yaml:"achievements" firestore:"experienceAndAchievements"`
}
