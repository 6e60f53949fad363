package insights

import "github.com/desertthunder/watchlog/internal/models"

// defaultCategories is the standard YouTube video category list used when no
// synced pool is available.
var defaultCategories = []models.Category{
	{ID: 1, Name: "Film & Animation"},
	{ID: 2, Name: "Autos & Vehicles"},
	{ID: 10, Name: "Music"},
	{ID: 15, Name: "Pets & Animals"},
	{ID: 17, Name: "Sports"},
	{ID: 19, Name: "Travel & Events"},
	{ID: 20, Name: "Gaming"},
	{ID: 22, Name: "People & Blogs"},
	{ID: 23, Name: "Comedy"},
	{ID: 24, Name: "Entertainment"},
	{ID: 25, Name: "News & Politics"},
	{ID: 26, Name: "Howto & Style"},
	{ID: 27, Name: "Education"},
	{ID: 28, Name: "Science & Technology"},
	{ID: 29, Name: "Nonprofits & Activism"},
}

// defaultChannels seeds channel names when the user has no synced subscriptions.
var defaultChannels = []string{
	"TechCrunch",
	"Verge",
	"Marques Brownlee",
	"Linus Tech Tips",
	"Kurzgesagt",
	"CGP Grey",
	"Vsauce",
	"Numberphile",
	"Tom Scott",
	"Computerphile",
	"3Blue1Brown",
	"Veritasium",
	"CrashCourse",
	"Khan Academy",
	"MIT OpenCourseWare",
}

// DefaultPool returns a fresh copy of the built-in name pool.
func DefaultPool() models.NamePool {
	pool := models.NamePool{
		Channels:   make([]string, len(defaultChannels)),
		Categories: make([]models.Category, len(defaultCategories)),
	}
	copy(pool.Channels, defaultChannels)
	copy(pool.Categories, defaultCategories)
	return pool
}

// DefaultCategories returns a copy of the built-in category list for the
// categories endpoint.
func DefaultCategories() []models.Category {
	out := make([]models.Category, len(defaultCategories))
	copy(out, defaultCategories)
	return out
}
