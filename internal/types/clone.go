package types

import "slices"

// Clone returns a deep copy. The optimization loop copies its working record
// before every round so a failed round can fall back without partial
// corruption.
func (r ResumeRecord) Clone() ResumeRecord {
	out := r
	out.Skills = slices.Clone(r.Skills)
	out.Certifications = slices.Clone(r.Certifications)

	if r.Experience != nil {
		out.Experience = make([]ExperienceEntry, len(r.Experience))
		for i, exp := range r.Experience {
			exp.Details = slices.Clone(exp.Details)
			out.Experience[i] = exp
		}
	}
	if r.Projects != nil {
		out.Projects = make([]ProjectEntry, len(r.Projects))
		for i, p := range r.Projects {
			p.Details = slices.Clone(p.Details)
			out.Projects[i] = p
		}
	}
	out.Education.Entries = slices.Clone(r.Education.Entries)
	return out
}
