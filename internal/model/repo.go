package model

import (
	"context"

	"feedback/internal/entity"
)

// Repository defines the persistence operations backing handlers and policy
// checks. Reads return gorm.ErrRecordNotFound when no row matches.
type Repository interface {
	// Roles
	CreateRole(ctx context.Context, role *entity.DbRole) error
	GetRoleByName(ctx context.Context, name string) (*entity.DbRole, error)
	GetRoleByID(ctx context.Context, id uint) (*entity.DbRole, error)
	ListRoles(ctx context.Context) ([]entity.DbRole, error)
	UpdateRole(ctx context.Context, id uint, updates map[string]interface{}) error
	DeleteRole(ctx context.Context, id uint) error

	// Users
	CreateUser(ctx context.Context, user *entity.DbUser) error
	GetUserByEmail(ctx context.Context, email string) (*entity.DbUser, error)
	GetUserByID(ctx context.Context, id uint) (*entity.DbUser, error)
	ListUsers(ctx context.Context, params *entity.UserQuery) ([]entity.DbUser, *entity.Meta, error)
	UpdateUser(ctx context.Context, id uint, updates map[string]interface{}) error
	DeleteUser(ctx context.Context, id uint) error
	CountUsers(ctx context.Context) (int64, error)

	// Question types
	CreateQuestionType(ctx context.Context, questionType *entity.DbQuestionType) error
	GetQuestionTypeByName(ctx context.Context, name string) (*entity.DbQuestionType, error)
	GetQuestionTypeByID(ctx context.Context, id uint) (*entity.DbQuestionType, error)
	ListQuestionTypes(ctx context.Context) ([]entity.DbQuestionType, error)
	UpdateQuestionType(ctx context.Context, id uint, updates map[string]interface{}) error
	DeleteQuestionType(ctx context.Context, id uint) error

	// Feedback forms
	CreateForm(ctx context.Context, form *entity.DbFeedbackForm) error
	GetFormByTitle(ctx context.Context, title string) (*entity.DbFeedbackForm, error)
	GetFormByID(ctx context.Context, id uint) (*entity.DbFeedbackForm, error)
	ListForms(ctx context.Context) ([]entity.DbFeedbackForm, error)
	UpdateForm(ctx context.Context, id uint, updates map[string]interface{}) error
	DeleteForm(ctx context.Context, id uint) error

	// Questions
	CreateQuestion(ctx context.Context, question *entity.DbQuestion) error
	GetQuestionByID(ctx context.Context, id uint) (*entity.DbQuestion, error)
	ListQuestionsByForm(ctx context.Context, formID uint) ([]entity.DbQuestion, error)
	UpdateQuestion(ctx context.Context, id uint, updates map[string]interface{}) error
	DeleteQuestion(ctx context.Context, id uint) error

	// Options
	CreateOption(ctx context.Context, option *entity.DbOption) error
	GetOptionByID(ctx context.Context, id uint) (*entity.DbOption, error)
	ListOptionsByQuestion(ctx context.Context, questionID uint) ([]entity.DbOption, error)
	UpdateOption(ctx context.Context, id uint, updates map[string]interface{}) error
	DeleteOption(ctx context.Context, id uint) error

	// Answers
	CreateAnswer(ctx context.Context, answer *entity.DbAnswer) error
	ListAnswersByQuestion(ctx context.Context, questionID uint) ([]entity.DbAnswer, error)
	ListAnswersByUser(ctx context.Context, userID uint) ([]entity.DbAnswer, error)

	// Profiles
	GetProfileByUserID(ctx context.Context, userID uint) (*entity.DbProfile, error)
	SaveProfile(ctx context.Context, profile *entity.DbProfile) error
}
