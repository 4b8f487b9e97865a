package usecase

import (
	"campusbridge/internal/domain/matching"
	"campusbridge/internal/repository"
)

func engineStudent(s repository.StudentSnapshot) matching.StudentProfile {
	return matching.StudentProfile{
		ID:                s.ID,
		Skills:            s.Skills,
		AvailableFrom:     s.AvailableFrom,
		AvailableUntil:    s.AvailableUntil,
		WeeklyHours:       s.WeeklyHours,
		GraduationYear:    s.GraduationYear,
		CompletedProjects: s.CompletedProjects,
		ActiveProjects:    s.ActiveProjects,
		DroppedProjects:   s.DroppedProjects,
		Institution:       s.Institution,
		CategoryHistory:   s.CategoryHistory,
		UpdatedAt:         s.UpdatedAt,
	}
}

func engineListing(l repository.ListingSnapshot) matching.ProjectListing {
	return matching.ProjectListing{
		ID:                    l.ID,
		RequiredSkills:        l.RequiredSkills,
		Category:              l.Category,
		Compensation:          l.Compensation,
		HoursPerWeek:          l.HoursPerWeek,
		StartDate:             l.StartDate,
		EndDate:               l.EndDate,
		PublishedAt:           l.PublishedAt,
		ApplicantCount:        l.ApplicantCount,
		MaxApplicants:         l.MaxApplicants,
		SponsorCompletionRate: l.SponsorCompletionRate,
		SponsorAffiliations:   l.SponsorAffiliations,
	}
}

func engineStudents(in []repository.StudentSnapshot) []matching.StudentProfile {
	out := make([]matching.StudentProfile, 0, len(in))
	for _, s := range in {
		out = append(out, engineStudent(s))
	}
	return out
}

func engineListings(in []repository.ListingSnapshot) []matching.ProjectListing {
	out := make([]matching.ProjectListing, 0, len(in))
	for _, l := range in {
		out = append(out, engineListing(l))
	}
	return out
}
