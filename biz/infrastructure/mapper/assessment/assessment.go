package assessment

import "time"
import "go.mongodb.org/mongo-driver/bson/primitive"

// Assessment 风险评估记录, 供督导端只读查询
type Assessment struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserId                string             `bson:"user_id" json:"user_id"`
	Level                 string             `bson:"level" json:"level"`
	Score                 float64            `bson:"score" json:"score"`
	Indicators            []string           `bson:"indicators" json:"indicators"`
	EarlyWarnings         []string           `bson:"early_warnings" json:"early_warnings"`
	Recommendations       []string           `bson:"recommendations" json:"recommendations"`
	InterventionTriggered bool               `bson:"intervention_triggered" json:"intervention_triggered"`
	AssessedAt            time.Time          `bson:"assessed_at" json:"assessed_at"`
}
