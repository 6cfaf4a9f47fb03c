package dto

type (
	// SessionStartReq 开始干预会话请求
	SessionStartReq struct {
		// 开始的时间戳
		Timestamp int64 `json:"timestamp"`
		// 使用者标记
		From string `json:"from"`
		// 用户id
		UserId string `json:"user_id"`
		// 首条消息
		Msg string `json:"msg"`
	}

	// SessionReq 会话内消息请求
	SessionReq struct {
		// 命令, 0对话, -1结束, 1心跳
		Cmd int64  `json:"cmd"`
		Msg string `json:"msg"`
	}

	// StepData 推送给前端的单个干预步骤
	StepData struct {
		SessionId   string  `json:"session_id"`
		StepIndex   int     `json:"step_index"`
		StepType    string  `json:"step_type"`
		Prompt      string  `json:"prompt"`
		Level       string  `json:"level"`
		Progress    float64 `json:"progress"`
		IsCompleted bool    `json:"is_completed"`
		Escalated   bool    `json:"escalated"`
		Timestamp   int64   `json:"timestamp"`
	}

	// SessionEndResp 会话结束响应
	SessionEndResp struct {
		Code      int    `json:"code"`
		Msg       string `json:"msg"`
		SessionId string `json:"session_id"`
		Level     string `json:"level"`
	}
)
