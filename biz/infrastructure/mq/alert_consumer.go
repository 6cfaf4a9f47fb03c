package mq

import (
	"encoding/json"
	"github.com/bytedance/gopkg/util/gopool"
	"github.com/golang/glog"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/xh-polaris/psych-crisis/biz/infrastructure/consts"
	"github.com/xh-polaris/psych-crisis/biz/infrastructure/mapper/session"
	"github.com/xh-polaris/psych-crisis/biz/infrastructure/util"
	"golang.org/x/net/context"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// AlertConsumer 消费会话结束消息: 归档会话, 高风险时触发人工告警
type AlertConsumer struct {
	conn   *amqp.Connection
	finish chan struct{}
}

// NewAlertConsumer 创建一个消费者
func NewAlertConsumer() *AlertConsumer {
	return &AlertConsumer{
		conn:   getConn(),
		finish: make(chan struct{}),
	}
}

// Consume 启动消费者
func Consume() {
	consumer := NewAlertConsumer()
	consumer.Start()
}

// Start 开始消费
func (c *AlertConsumer) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 启动消息处理
	gopool.CtxGo(ctx, func() {
		c.consume(ctx)
	})
	// 处理系统信号
	gopool.CtxGo(ctx, func() {
		c.osSignalHandler(ctx)
		c.finish <- struct{}{}
	})

	<-c.finish
}

// 消费信息
func (c *AlertConsumer) consume(ctx context.Context) {
	ch, err := c.conn.Channel()
	if err != nil {
		glog.Error("get channel error:", err)
		return
	}
	defer func() { _ = ch.Close() }()
	err = ch.Qos(1, 0, false)
	if err != nil {
		glog.Error("set qos error:", err)
		return
	}
	msgs, err := ch.Consume(consts.AlertQueue, "alert_consumer", false, false, false, false, nil)
	if err != nil {
		glog.Error("get consume error:", err)
		return
	}

	for msg := range msgs {
		if err = c.process(ctx, msg); err != nil {
			// 失败时拒绝并重试
			glog.Error("处理失败, 消息重新入队:", err)
			if err = msg.Nack(false, true); err != nil {
				glog.Error("nack失败 ", err)
			}
		} else if err = msg.Ack(false); err != nil {
			glog.Error("ack失败 ", err)
		}
	}
}

// osSignalHandler 处理os信号
func (c *AlertConsumer) osSignalHandler(ctx context.Context) {
	glog.Info("[osSignalHandler] start")
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	osSignal := <-ch
	glog.Infof("[osSignalHandler] receive signal:[%v]", osSignal)
}

// process 实际消费逻辑
func (c *AlertConsumer) process(ctx context.Context, msg amqp.Delivery) error {
	var m AlertMessage
	if err := json.Unmarshal(msg.Body, &m); err != nil {
		return err
	}

	// 归档会话
	doc := &session.Session{
		SessionId:             m.SessionId,
		UserId:                m.UserId,
		InitialLevel:          m.InitialLevel,
		CurrentLevel:          m.CurrentLevel,
		Score:                 m.Score,
		Indicators:            m.Indicators,
		InterventionTriggered: m.InterventionTriggered,
		Escalated:             m.Escalated,
		Status:                m.Status,
		StepsCompleted:        m.StepsCompleted,
		TotalSteps:            m.TotalSteps,
		StartTime:             time.Unix(m.StartTime, 0),
		EndTime:               time.Unix(m.EndTime, 0),
	}
	if err := c.store(ctx, doc); err != nil {
		return err
	}

	// 高风险时通知人工复核
	if m.InterventionTriggered {
		if err := util.AlertEMail(m.UserId, m.CurrentLevel); err != nil {
			// 邮件失败不阻塞归档, 消息已落库, 只记录日志
			glog.Error("预警邮件发送失败:", err)
		}
	}
	return nil
}

// store 存储会话归档
func (c *AlertConsumer) store(ctx context.Context, doc *session.Session) error {
	mapper := session.GetMongoMapper()
	return mapper.Insert(ctx, doc)
}
