package main

import (
	"github.com/cloudwego/hertz/pkg/app/server"
	hertztracing "github.com/hertz-contrib/obs-opentelemetry/tracing"
	"github.com/xh-polaris/psych-crisis/biz/adaptor/router"
	"github.com/xh-polaris/psych-crisis/biz/infrastructure/config"
	"github.com/xh-polaris/psych-crisis/biz/infrastructure/mq"
	"github.com/xh-polaris/psych-crisis/provider"
)

func main() {
	provider.Init()
	c := config.GetConfig()

	tracer, cfg := hertztracing.NewServerTracer()
	h := server.Default(tracer, server.WithHostPorts(c.ListenOn))
	h.Use(hertztracing.ServerMiddleware(cfg))

	router.Register(h)

	// 启动告警消费者
	go mq.Consume()

	h.Spin()
}
