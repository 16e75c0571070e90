package entity

// DbAnswer represents a single answer an end user submitted for a question.
// SelectedAnswer carries the chosen option for choice questions,
// UserInputAnswer carries free text, Rating carries a numeric rating.
type DbAnswer struct {
	ID              uint   `gorm:"primarykey" json:"id"`
	QuestionID      uint   `gorm:"column:question_id;index" json:"question_id"`
	UserID          uint   `gorm:"column:user_id;index" json:"user_id"`
	SelectedAnswer  string `gorm:"column:selected_answer;type:varchar(512)" json:"selected_answer"`
	UserInputAnswer string `gorm:"column:user_input_answer;type:varchar(2048)" json:"user_input_answer"`
	Rating          *int   `gorm:"column:rating" json:"rating"`
}

// TableName overrides default pluralised name.
func (DbAnswer) TableName() string {
	return "answers"
}

type AnswerCreateRequest struct {
	QuestionID      uint   `json:"question_id" binding:"required"`
	SelectedAnswer  string `json:"selected_answer"`
	UserInputAnswer string `json:"user_input_answer"`
	Rating          *int   `json:"rating"`
}
