package domain

import (
	"time"
)

// Role is a user role. The set is closed; analytics must report a
// bucket for every role even when its count is zero.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// AllRoles returns every role in a fixed order
func AllRoles() []Role {
	return []Role{RoleUser, RoleAdmin}
}

// Vote values. Net score of a question is the sum of its vote values.
const (
	VoteUp   = 1
	VoteDown = -1
)

// User represents a forum member
type User struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(100)" json:"name"`
	Email     string    `gorm:"column:email;type:varchar(255);uniqueIndex" json:"email"`
	Image     *string   `gorm:"column:image;type:varchar(500)" json:"image,omitempty"`
	Role      Role      `gorm:"column:role;type:enum('USER','ADMIN');default:'USER'" json:"role"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }

// Question represents a forum question
type Question struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Title     string    `gorm:"column:title;type:varchar(255)" json:"title"`
	Content   string    `gorm:"column:content;type:text" json:"content"`
	ImageURL  *string   `gorm:"column:image_url;type:varchar(500)" json:"image_url,omitempty"`
	AuthorID  uint64    `gorm:"column:author_id;index" json:"author_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Author *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Tags   []Tag `gorm:"many2many:question_tags" json:"tags,omitempty"`
}

func (Question) TableName() string { return "questions" }

// Comment represents a comment on a question
type Comment struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Content    string    `gorm:"column:content;type:text" json:"content"`
	QuestionID uint64    `gorm:"column:question_id;index" json:"question_id"`
	AuthorID   uint64    `gorm:"column:author_id;index" json:"author_id"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	Author *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

func (Comment) TableName() string { return "comments" }

// Vote represents an up/down vote on a question.
// One row per (question, user); Value is +1 or -1.
type Vote struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	QuestionID uint64    `gorm:"column:question_id;index" json:"question_id"`
	UserID     uint64    `gorm:"column:user_id;index" json:"user_id"`
	Value      int       `gorm:"column:value" json:"value"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Vote) TableName() string { return "votes" }

// Tag represents a topic tag attachable to questions
type Tag struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(100);uniqueIndex" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Tag) TableName() string { return "tags" }

// Notification represents a user notification
type Notification struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID    uint64    `gorm:"column:user_id;index" json:"user_id"`
	Type      string    `gorm:"column:type;type:varchar(50)" json:"type"`
	Message   string    `gorm:"column:message;type:varchar(500)" json:"message"`
	Read      bool      `gorm:"column:is_read;default:false" json:"read"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }
