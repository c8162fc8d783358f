// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package site

import (
	"cmp"
	"context"
	"slices"

	"github.com/olegiv/mirror-creative/internal/model"
	"github.com/olegiv/mirror-creative/internal/nav"
	"github.com/olegiv/mirror-creative/internal/slides"
)

const wixMedia = "https://static.wixstatic.com/media/"

// HeroSlides are the home page banners in display order.
var HeroSlides = []slides.Slide{
	{
		Title:   "Discover Your Art",
		Tagline: "Unleash your creative potential with expert guidance",
		Image:   wixMedia + "43707e_9282e5ff05b748adb3ff2fb901b1c0a9~mv2.png?originWidth=1920&originHeight=1024",
	},
	{
		Title:   "Move. Express. Inspire.",
		Tagline: "Dance your way to excellence",
		Image:   wixMedia + "43707e_fb14468a50a041f8a4ea212b91434fc2~mv2.png?originWidth=1920&originHeight=1024",
	},
	{
		Title:   "Your Journey Starts Here",
		Tagline: "Join a community of passionate artists",
		Image:   wixMedia + "43707e_d87da6e8f3e940b8990021b55071f1f2~mv2.png?originWidth=1920&originHeight=1024",
	},
}

// SubjectCard links a home page tile to a subject page.
type SubjectCard struct {
	Name        string
	Icon        string
	URL         string
	Description string
	Image       string
	Wide        bool
}

// SubjectCards are the "What We Offer" tiles.
var SubjectCards = []SubjectCard{
	{
		Name: "Musical Instruments", Icon: "music", URL: nav.PathInstruments, Wide: true,
		Description: "Master your favorite instrument with expert guidance",
		Image:       wixMedia + "43707e_87b968677e574da8913d2f9d0da8c0ec~mv2.png?originWidth=640&originHeight=384",
	},
	{
		Name: "Singing", Icon: "mic", URL: nav.PathSinging,
		Description: "Find your voice and express yourself through song",
		Image:       wixMedia + "43707e_39312701053f40138dba47d010268a10~mv2.png?originWidth=640&originHeight=384",
	},
	{
		Name: "Dancing", Icon: "sparkles", URL: nav.PathDancing,
		Description: "Move with grace and rhythm across various styles",
		Image:       wixMedia + "43707e_2800d6962957408a806b8d7708edcf88~mv2.png?originWidth=640&originHeight=384",
	},
	{
		Name: "Art", Icon: "palette", URL: nav.PathArt, Wide: true,
		Description: "Explore visual creativity through diverse mediums",
		Image:       wixMedia + "43707e_e279c783f7e34448a8057b2e6245901b~mv2.png?originWidth=640&originHeight=384",
	},
}

// MarqueeWords scroll across the ticker under the hero.
var MarqueeWords = []string{"Music", "Dance", "Art", "Theatre"}

// Stat is a headline number.
type Stat struct {
	Number string
	Label  string
}

// Stats accompany the "Why Choose Us" heading.
var Stats = []Stat{
	{Number: "500+", Label: "Students"},
	{Number: "15+", Label: "Teachers"},
	{Number: "10", Label: "Years"},
	{Number: "100%", Label: "Passion"},
}

// Feature is an icon with a title and a sentence.
type Feature struct {
	Icon        string
	Title       string
	Description string
}

// Features are the reasons listed under "Why Choose Us".
var Features = []Feature{
	{Icon: "users", Title: "Expert Teachers", Description: "Learn from experienced professionals passionate about nurturing talent."},
	{Icon: "award", Title: "All Skill Levels", Description: "From beginners to advanced, we have programs tailored for everyone."},
	{Icon: "calendar", Title: "Performance Opportunities", Description: "Showcase your skills in concerts, exhibitions, and events."},
	{Icon: "star", Title: "Certified Courses", Description: "Gain recognized certifications that validate your artistic journey."},
}

// Banner is a full-width call to action.
type Banner struct {
	Title     string
	Highlight string
	Text      string
	Image     string
}

// HomeBanner closes the home page.
var HomeBanner = Banner{
	Title:     "Start Your",
	Highlight: "journey",
	Text:      "Join hundreds of students who have discovered their artistic passion with us. The stage is waiting for you.",
	Image:     wixMedia + "43707e_cc7642bd651649f88e3f7484c6bcec49~mv2.png?originWidth=1152&originHeight=576",
}

// SlideView is a hero slide with its position resolved.
type SlideView struct {
	Index   int
	Number  int
	Title   string
	Tagline string
	Image   string
	Active  bool
}

// HomeData is the view model of the home page.
type HomeData struct {
	Base
	Slides       []SlideView
	SlideIndex   int
	SubjectCards []SubjectCard
	Marquee      []string
	Stats        []Stat
	Features     []Feature
	Banner       Banner

	Subjects     []model.CreativeSubject
	CoreValues   []model.CoreValue
	Testimonials []model.StudentTestimonial
	Teachers     []model.Teacher
	Gallery      []model.GalleryItem
}

// Home builds the home page. The initially visible slide is the rotator's
// current one unless slide names a valid index; pass -1 for no override.
func (s *Site) Home(ctx context.Context, slide int) (*HomeData, error) {
	d := &HomeData{
		Base:         s.base(nav.PathHome),
		SubjectCards: SubjectCards,
		Marquee:      MarqueeWords,
		Stats:        Stats,
		Features:     Features,
		Banner:       HomeBanner,
	}

	var values []model.CoreValue
	err := s.load(ctx,
		Fetch(&d.Subjects, model.CollectionCreativeSubjects, 0, s.src.CreativeSubjects),
		Fetch(&d.Testimonials, model.CollectionStudentTestimonials, HomeTestimonialLimit, s.src.StudentTestimonials),
		Fetch(&d.Teachers, model.CollectionTeachers, HomeTeacherLimit, s.src.Teachers),
		Fetch(&d.Gallery, model.CollectionGalleryItems, HomeGalleryLimit, s.src.GalleryItems),
		Fetch(&values, model.CollectionCoreValues, 0, s.src.CoreValues),
	)
	if err != nil {
		return nil, err
	}
	d.CoreValues = ActiveCoreValues(values)

	d.SlideIndex = s.slideIndex(slide)
	hero := s.heroSlides()
	d.Slides = make([]SlideView, len(hero))
	for i, sl := range hero {
		d.Slides[i] = SlideView{
			Index:   i,
			Number:  i + 1,
			Title:   sl.Title,
			Tagline: sl.Tagline,
			Image:   sl.Image,
			Active:  i == d.SlideIndex,
		}
	}
	if len(hero) > 0 {
		d.OGImage = hero[0].Image
	}
	return d, nil
}

func (s *Site) heroSlides() []slides.Slide {
	if s.rotator != nil {
		return s.rotator.Slides()
	}
	return HeroSlides
}

func (s *Site) slideIndex(override int) int {
	n := len(s.heroSlides())
	if override >= 0 && override < n {
		return override
	}
	if s.rotator != nil {
		if i, _ := s.rotator.Current(); i >= 0 {
			return i
		}
	}
	return 0
}

// ActiveCoreValues keeps the active values and orders them by DisplayOrder.
// Values with equal order keep their relative position.
func ActiveCoreValues(values []model.CoreValue) []model.CoreValue {
	out := make([]model.CoreValue, 0, len(values))
	for _, v := range values {
		if v.IsActive {
			out = append(out, v)
		}
	}
	slices.SortStableFunc(out, func(a, b model.CoreValue) int {
		return cmp.Compare(a.DisplayOrder, b.DisplayOrder)
	})
	return out
}
