package scheme

import "time"

// Subjects and Grades are the choices offered by the scheme form. They are
// not enforced: stored schemes may carry any non-empty value.
var (
	Subjects = []string{"Mathematics", "Science", "English", "History", "Art", "Music", "Physical Education", "Other"}
	Grades   = []string{"Elementary School", "Middle School", "High School", "College"}
)

// SampleSchemes returns the dataset used when the store holds nothing yet.
func SampleSchemes(now time.Time) []Scheme {
	day := 24 * time.Hour
	return []Scheme{
		{
			ID:          "1",
			Title:       "Mathematics Curriculum",
			Description: "Comprehensive math curriculum covering algebra, geometry, and calculus for high school students.",
			Subject:     "Mathematics",
			Grade:       "High School",
			Duration:    12,
			Objectives:  []string{"Master algebraic concepts", "Understand geometric principles", "Solve calculus problems"},
			Resources:   []string{"Textbook", "Online exercises", "Graphing calculator"},
			CreatedAt:   Timestamp(now),
		},
		{
			ID:          "2",
			Title:       "Science Fundamentals",
			Description: "Basic principles of physics, chemistry, and biology for middle school students.",
			Subject:     "Science",
			Grade:       "Middle School",
			Duration:    8,
			Objectives:  []string{"Understand scientific method", "Learn basic physics", "Explore chemical reactions"},
			Resources:   []string{"Lab equipment", "Science kit", "Reference books"},
			CreatedAt:   Timestamp(now.Add(-day)),
		},
		{
			ID:          "3",
			Title:       "Literature Program",
			Description: "Classic and contemporary literature analysis for advanced English students.",
			Subject:     "English",
			Grade:       "High School",
			Duration:    10,
			Objectives:  []string{"Analyze literary themes", "Develop critical thinking", "Improve writing skills"},
			Resources:   []string{"Novels", "Study guides", "Writing handbook"},
			CreatedAt:   Timestamp(now.Add(-2 * day)),
		},
	}
}
