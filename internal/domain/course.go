package domain

// Difficulty uses the Korean grading shown on trail signage: 하 (easy), 중 (moderate), 상 (hard).
type Difficulty string

const (
	DifficultyEasy     Difficulty = "하"
	DifficultyModerate Difficulty = "중"
	DifficultyHard     Difficulty = "상"
)

type Section struct {
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	DistanceKm  float64    `json:"distanceKm" yaml:"distance"`
	Duration    string     `json:"duration" yaml:"duration"`
	Difficulty  Difficulty `json:"difficulty" yaml:"difficulty"`
	Start       string     `json:"start" yaml:"start"`
	End         string     `json:"end" yaml:"end"`
	Checkpoints []string   `json:"checkpoints" yaml:"checkpoints"`
}

type Facilities struct {
	Restroom      bool `json:"restroom" yaml:"restroom"`
	DrinkingWater bool `json:"drinkingWater" yaml:"drinkingWater"`
	Viewpoint     bool `json:"viewpoint" yaml:"viewpoint"`
	Parking       bool `json:"parking" yaml:"parking"`
}

type Course struct {
	ID             CourseID   `json:"id" yaml:"id"`
	Name           string     `json:"name" yaml:"name"`
	Description    string     `json:"description" yaml:"description"`
	DistanceKm     float64    `json:"distanceKm" yaml:"distance"`
	Duration       string     `json:"duration" yaml:"duration"`
	Difficulty     Difficulty `json:"difficulty" yaml:"difficulty"`
	Region         string     `json:"region" yaml:"region"`
	Sections       []Section  `json:"sections" yaml:"sections"`
	Facilities     Facilities `json:"facilities" yaml:"facilities"`
	Transportation string     `json:"transportation" yaml:"transportation"`
	Highlights     []string   `json:"highlights" yaml:"highlights"`
	Lat            float64    `json:"lat" yaml:"lat"`
	Lng            float64    `json:"lng" yaml:"lng"`
	// SeedCompletedCount is the historical completer count shipped with the catalog.
	SeedCompletedCount int `json:"seedCompletedCount" yaml:"completedCount"`
}
