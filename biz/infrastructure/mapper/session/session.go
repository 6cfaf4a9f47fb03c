package session

import "time"
import "go.mongodb.org/mongo-driver/bson/primitive"

// Session 已结束干预会话的归档记录
type Session struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	SessionId             string             `bson:"session_id" json:"session_id"`
	UserId                string             `bson:"user_id" json:"user_id"`
	InitialLevel          string             `bson:"initial_level" json:"initial_level"`
	CurrentLevel          string             `bson:"current_level" json:"current_level"`
	Score                 float64            `bson:"score" json:"score"`
	Indicators            []string           `bson:"indicators" json:"indicators"`
	InterventionTriggered bool               `bson:"intervention_triggered" json:"intervention_triggered"`
	Escalated             bool               `bson:"escalated" json:"escalated"`
	Status                string             `bson:"status" json:"status"`
	StepsCompleted        int                `bson:"steps_completed" json:"steps_completed"`
	TotalSteps            int                `bson:"total_steps" json:"total_steps"`
	StartTime             time.Time          `bson:"start_time" json:"start_time"`
	EndTime               time.Time          `bson:"end_time" json:"end_time"`
}
