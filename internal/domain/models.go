package domain

// CourseFields holds the descriptive columns shared by catalog, enrollment
// and cart rows.
type CourseFields struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Instructor   string  `json:"instructor"`
	Price        float64 `json:"price"`
	Category     string  `json:"category"`
	Duration     string  `json:"duration"`
	LessonsCount int     `json:"lessons_count"`
	Rating       float64 `json:"rating"`
	ImageURL     string  `json:"image_url"`
}

// Course is a catalog item.
type Course struct {
	ID int64 `json:"id"`
	CourseFields
}

// Task is an assignment shown to learners.
type Task struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Priority string `json:"priority"`
	DueDate  string `json:"dueDate"`
}

// Enrollment records a user's enrolled course.
type Enrollment struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	CourseFields
}

// CartItem is a course placed in a user's cart.
type CartItem struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	CourseFields
	Quantity int `json:"quantity"`
}

// User is an account record. PasswordHash never leaves the backend.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
}
