package mq

import (
	"encoding/json"
	"fmt"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/xh-polaris/gopkg/util/log"
	"github.com/xh-polaris/psych-crisis/biz/domain/crisis"
	"github.com/xh-polaris/psych-crisis/biz/infrastructure/config"
	"github.com/xh-polaris/psych-crisis/biz/infrastructure/consts"
	"github.com/xh-polaris/psych-crisis/biz/infrastructure/util"
	"golang.org/x/net/context"
	"math"
	"sync"
	"time"
)

// conn 采用单例模式, 复用连接
var (
	conn *amqp.Connection
	once sync.Once
	url  string
)

// getConn 获取连接单例
func getConn() *amqp.Connection {
	once.Do(func() {
		conf := config.GetConfig()
		url = conf.RabbitMQ.Url
		c, err := amqp.Dial(url)
		if err != nil {
			util.FailOnError("rabbit mq connect failed", err)
		}
		conn = c
		// 自动重连监听
		go monitor()
	})
	return conn
}

// monitor 监听健康状态并重连
func monitor() {
	for {
		reason := <-conn.NotifyClose(make(chan *amqp.Error))
		log.Info("RabbitMQ connection closed , reason: ", reason)

		retries := 0
		for {
			time.Sleep(time.Duration(math.Pow(2, float64(retries))) * time.Second)

			newConn, err := amqp.Dial(url)
			if err == nil {
				conn = newConn
				log.Info("Reconnect to RabbitMQ")
				break
			}
			retries++
			if retries > 5 {
				util.FailOnError("超过最大重连次数5", fmt.Errorf("RabbitMQ 断开连接且重连失败"))
				return
			}
		}
	}
}

var (
	producer     *AlertProducer
	producerOnce sync.Once
)

// AlertProducer 会话归档与高风险告警消息生产者
type AlertProducer struct {
	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
}

// GetAlertProducer 获取告警生产者单例
func GetAlertProducer() *AlertProducer {
	producerOnce.Do(func() {
		c := getConn()
		ch, err := c.Channel()
		if err != nil {
			util.FailOnError("create channel failed", err)
		}
		producer = &AlertProducer{
			conn:    c,
			channel: ch,
		}
	})
	return producer
}

// AlertMessage 发往告警队列的会话快照
type AlertMessage struct {
	SessionId             string    `json:"session_id"`
	UserId                string    `json:"user_id"`
	InitialLevel          string    `json:"initial_level"`
	CurrentLevel          string    `json:"current_level"`
	Score                 float64   `json:"score"`
	Indicators            []string  `json:"indicators"`
	InterventionTriggered bool      `json:"intervention_triggered"`
	Escalated             bool      `json:"escalated"`
	Status                string    `json:"status"`
	StepsCompleted        int       `json:"steps_completed"`
	TotalSteps            int       `json:"total_steps"`
	StartTime             int64     `json:"start"`
	EndTime               int64     `json:"end"`
	ProducedAt            time.Time `json:"produced_at"`
}

// Produce 发布会话结束消息
// 引擎只负责产出数据, 是否告警与如何触达由消费侧决定
func (p *AlertProducer) Produce(ctx context.Context, s *crisis.Session) error {
	inds := make([]string, 0, len(s.CurrentAssessment.Indicators))
	for _, ind := range s.CurrentAssessment.Indicators {
		inds = append(inds, string(ind))
	}
	end := time.Now().Unix()
	if s.CompletedAt != nil {
		end = s.CompletedAt.Unix()
	}
	msg := &AlertMessage{
		SessionId:             s.Id,
		UserId:                s.UserId,
		InitialLevel:          s.InitialAssessment.Level.String(),
		CurrentLevel:          s.CurrentAssessment.Level.String(),
		Score:                 s.CurrentAssessment.Score,
		Indicators:            inds,
		InterventionTriggered: s.CurrentAssessment.InterventionTriggered,
		Escalated:             s.Escalated,
		Status:                string(s.Status),
		StepsCompleted:        len(s.CompletedSteps),
		TotalSteps:            len(s.Script.Steps),
		StartTime:             s.StartedAt.Unix(),
		EndTime:               end,
		ProducedAt:            time.Now(),
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	// 发布持久化消息
	err = p.channel.PublishWithContext(ctx, consts.AlertExchange, consts.AlertRoutingKey,
		false, false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
		})
	return err
}
