package entity

import "time"

// DbQuestionType represents a persisted question type (rating, free text,
// single choice and so on). Types are defined by administrators.
type DbQuestionType struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	Name          string    `gorm:"column:name;type:varchar(100);uniqueIndex;not null" json:"name"`
	Description   string    `gorm:"column:description;type:varchar(512)" json:"description"`
	CreatedByUser uint      `gorm:"column:created_by_user;not null" json:"created_by_user"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName matches the original singular table name.
func (DbQuestionType) TableName() string {
	return "question_type"
}

// DbFeedbackForm represents a feedback form defined by an administrator.
type DbFeedbackForm struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Title     string    `gorm:"column:title;type:varchar(255);uniqueIndex;not null" json:"title"`
	CreatedBy uint      `gorm:"column:created_by" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides default pluralised name.
func (DbFeedbackForm) TableName() string {
	return "feedback_forms"
}

// DbQuestion represents a single question belonging to a feedback form.
type DbQuestion struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	FormID      uint   `gorm:"column:form_id;index" json:"form_id"`
	Text        string `gorm:"column:text;type:varchar(512);not null" json:"text"`
	Description string `gorm:"column:description;type:varchar(512)" json:"description"`
	TypeID      uint   `gorm:"column:type;not null" json:"type"`
}

// TableName overrides default pluralised name.
func (DbQuestion) TableName() string {
	return "questions"
}

// DbOption represents a selectable option attached to a question.
type DbOption struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	QuestionID  uint   `gorm:"column:question_id;index;not null" json:"question_id"`
	Text        string `gorm:"column:text;type:varchar(512)" json:"text"`
	Description string `gorm:"column:description;type:varchar(512)" json:"description"`
}

// TableName overrides default pluralised name.
func (DbOption) TableName() string {
	return "options"
}

type QuestionTypeCreateRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type QuestionTypeUpdateRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type QuestionTypeSummary struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type FormCreateRequest struct {
	Title string `json:"title" binding:"required"`
}

type FormUpdateRequest struct {
	Title string `json:"title" binding:"required"`
}

// FormSummary resolves the creator to an email for listing.
type FormSummary struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	CreatedBy string `json:"created_by"`
}

type QuestionCreateRequest struct {
	FormID      uint   `json:"form_id" binding:"required"`
	Text        string `json:"text" binding:"required"`
	Description string `json:"description"`
	TypeID      uint   `json:"type" binding:"required"`
}

type QuestionUpdateRequest struct {
	Text        string `json:"text" binding:"required"`
	Description string `json:"description"`
	TypeID      uint   `json:"type"`
}

type OptionCreateRequest struct {
	QuestionID  uint   `json:"question_id" binding:"required"`
	Text        string `json:"text" binding:"required"`
	Description string `json:"description"`
}

type OptionUpdateRequest struct {
	Text        string `json:"text" binding:"required"`
	Description string `json:"description"`
}

// OptionSummary resolves the parent question text for listing.
type OptionSummary struct {
	ID          uint   `json:"id"`
	Text        string `json:"text"`
	Description string `json:"description"`
	Question    string `json:"question"`
}
