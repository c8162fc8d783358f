// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package site

import (
	"context"

	"github.com/olegiv/mirror-creative/internal/model"
	"github.com/olegiv/mirror-creative/internal/nav"
)

// TeachersData is the view model of the teacher roster.
type TeachersData struct {
	Base
	Teachers []model.Teacher
}

// Teachers builds the teacher roster.
func (s *Site) Teachers(ctx context.Context) (*TeachersData, error) {
	d := &TeachersData{Base: s.base(nav.PathTeachers)}
	if err := s.load(ctx, Fetch(&d.Teachers, model.CollectionTeachers, 0, s.src.Teachers)); err != nil {
		return nil, err
	}
	return d, nil
}

// BookUsHighlights are the selling points above the service list.
var BookUsHighlights = []Feature{
	{Icon: "music", Title: "Professional Performances", Description: "Our talented musicians and performers deliver unforgettable shows"},
	{Icon: "users", Title: "Versatile Ensemble", Description: "From solo acts to full bands, we adapt to your event needs"},
	{Icon: "calendar", Title: "Flexible Scheduling", Description: "Available for concerts, private events, school functions, and more"},
	{Icon: "star", Title: "Premium Quality", Description: "Years of experience ensuring excellence in every performance"},
}

// BookUsData is the view model of the booking page.
type BookUsData struct {
	Base
	Highlights []Feature
	Services   []model.PerformanceService
}

// BookUs builds the booking page.
func (s *Site) BookUs(ctx context.Context) (*BookUsData, error) {
	d := &BookUsData{Base: s.base(nav.PathBookUs), Highlights: BookUsHighlights}
	if err := s.load(ctx, Fetch(&d.Services, model.CollectionPerformanceServices, 0, s.src.PerformanceServices)); err != nil {
		return nil, err
	}
	return d, nil
}

// EnrollBenefits are listed under "Why Enroll With Us?".
var EnrollBenefits = []string{
	"Expert instruction from experienced professionals",
	"Flexible class schedules to fit your lifestyle",
	"State-of-the-art facilities and equipment",
	"Performance opportunities throughout the year",
	"Supportive and inspiring learning environment",
	"Certified courses and skill development programs",
	"Small class sizes for personalized attention",
	"Access to our vibrant creative community",
}

// Step is a numbered enrollment step.
type Step struct {
	Number      string
	Title       string
	Description string
}

// EnrollSteps describe how to enroll.
var EnrollSteps = []Step{
	{Number: "01", Title: "Fill the Form", Description: "Complete our online enrollment form with your details and preferences"},
	{Number: "02", Title: "Choose Your Course", Description: "Select from our diverse range of creative disciplines and styles"},
	{Number: "03", Title: "Start Learning", Description: "Begin your journey with expert guidance and supportive community"},
}

// EnrollData is the view model of the enrollment page.
type EnrollData struct {
	Base
	Benefits []string
	Steps    []Step
}

// Enroll builds the enrollment page. It reads no content.
func (s *Site) Enroll() *EnrollData {
	return &EnrollData{Base: s.base(nav.PathEnroll), Benefits: EnrollBenefits, Steps: EnrollSteps}
}

// Founder is the profile on the about page.
type Founder struct {
	Name    string
	Role    string
	Photo   string
	Bio     []string
	Quote   string
	Message []string
}

// AboutStory is the institute's history, one paragraph per entry.
var AboutStory = []string{
	"Mirror Creative Institute was founded with a singular vision: to create a space where artistic passion meets professional excellence. What began as a small music school has blossomed into a comprehensive creative education center, nurturing talent across multiple disciplines.",
	"Over the years, we've grown from a handful of students to a thriving community of hundreds, all united by their love for the arts. Our journey has been marked by countless performances, exhibitions, and most importantly, the transformation of aspiring artists into confident creators.",
	"Today, Mirror Creative Institute stands as a beacon for creative education, offering world-class instruction in musical instruments, singing, dancing, and visual arts. Our commitment remains unchanged: to inspire, educate, and empower every student who walks through our doors.",
}

// AboutFounder is the founder profile.
var AboutFounder = Founder{
	Name:  "HM Jewel",
	Role:  "Founder & Creative Director",
	Photo: wixMedia + "43707e_682aa501855041009cb4ca060fe7339b~mv2.jpg",
	Bio: []string{
		"HM Jewel's journey in the creative arts spans decades of passion, dedication, and innovation. With a deep-rooted belief that creativity knows no boundaries, HM Jewel founded Mirror Creative Institute to create a sanctuary where artistic dreams transform into reality.",
		"Drawing from extensive experience in music, performance, and visual arts, HM Jewel has mentored hundreds of students, guiding them from their first tentative steps to confident performers and accomplished artists. His philosophy centers on the belief that every individual possesses unique creative potential waiting to be discovered and nurtured.",
		"Under HM Jewel's visionary leadership, Mirror Creative Institute has grown into a beacon of artistic excellence, known for its comprehensive curriculum, world-class instruction, and most importantly, its transformative impact on students' lives. His commitment to fostering creativity, building confidence, and celebrating artistic expression remains the driving force behind everything the institute does.",
	},
	Quote: "Art is not just what we create, it's who we become in the process.",
	Message: []string{
		"When I started Mirror Creative Institute, I had a simple dream: to create a place where creativity could flourish without boundaries. A place where a child's curiosity could transform into mastery, where passion could meet purpose, and where art could change lives.",
		"Over the years, I've witnessed countless transformations. Students who walked in hesitant and unsure, leaving as confident performers and artists. Parents who saw their children discover talents they never knew existed. Teachers who found fulfillment in nurturing the next generation of creative minds.",
		"This institute is more than just a school. It's a community, a family, a movement. Every performance, every exhibition, every small victory reminds me why we do what we do. We're not just teaching skills; we're shaping futures, building confidence, and proving that with the right guidance and dedication, anyone can achieve artistic excellence.",
		"Thank you for being part of our journey. Whether you're a student, parent, or supporter, you are the reason Mirror Creative Institute continues to thrive and inspire.",
	},
}

// Mission and vision statements.
const (
	AboutMission = "To provide exceptional creative education that empowers individuals of all ages to discover, develop, and express their artistic talents. We strive to create an inclusive, inspiring environment where passion meets discipline, and dreams become reality."
	AboutVision  = "To be recognized as a leading creative institute that transforms lives through the arts. We envision a world where creativity is celebrated, nurtured, and accessible to all, creating a ripple effect of artistic excellence in our community and beyond."
)

const (
	aboutStoryImage = wixMedia + "43707e_45574766c2aa44bb92134297767a3161~mv2.png?originWidth=768&originHeight=576"
	aboutSpaceImage = wixMedia + "43707e_2db17888506e42b38e64f6ebbba656a6~mv2.png?originWidth=448&originHeight=448"
	aboutSpaceTiles = 6
)

// AboutData is the view model of the about page.
type AboutData struct {
	Base
	Story       []string
	StoryImage  string
	Founder     Founder
	Mission     string
	Vision      string
	CoreValues  []model.CoreValue
	SpaceImages []string
}

// About builds the about page.
func (s *Site) About(ctx context.Context) (*AboutData, error) {
	d := &AboutData{
		Base:       s.base(nav.PathAbout),
		Story:      AboutStory,
		StoryImage: aboutStoryImage,
		Founder:    AboutFounder,
		Mission:    AboutMission,
		Vision:     AboutVision,
	}
	for range aboutSpaceTiles {
		d.SpaceImages = append(d.SpaceImages, aboutSpaceImage)
	}

	var values []model.CoreValue
	if err := s.load(ctx, Fetch(&values, model.CollectionCoreValues, 0, s.src.CoreValues)); err != nil {
		return nil, err
	}
	d.CoreValues = ActiveCoreValues(values)
	return d, nil
}

// ErrorData is the view model of the error page.
type ErrorData struct {
	Base
	Heading string
	Message string
}

// Error builds the page shown when a request cannot be served.
func (s *Site) Error(heading, message string) *ErrorData {
	b := s.base(nav.PathHome)
	b.Title = heading + " | " + s.settings.Name
	b.Canonical = ""
	return &ErrorData{Base: b, Heading: heading, Message: message}
}
