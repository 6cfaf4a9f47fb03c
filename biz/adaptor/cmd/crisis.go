package cmd

type (
	// RiskFactor 风险因子
	RiskFactor struct {
		Category    string  `json:"category"`
		Severity    float64 `json:"severity"`
		Description string  `json:"description"`
	}

	// EarlyWarning 早期预警
	EarlyWarning struct {
		Category    string `json:"category"`
		Severity    string `json:"severity"`
		Description string `json:"description"`
	}

	// RiskAssessment 风险评估结果
	RiskAssessment struct {
		Level                 string          `json:"level"`
		Score                 float64         `json:"score"`
		Indicators            []string        `json:"indicators"`
		RiskFactors           []*RiskFactor   `json:"risk_factors"`
		EarlyWarnings         []*EarlyWarning `json:"early_warnings"`
		Recommendations       []string        `json:"recommendations"`
		InterventionTriggered bool            `json:"intervention_triggered"`
		AssessedAt            int64           `json:"assessed_at"`
	}

	// AssessReq 风险评估请求
	AssessReq struct {
		UserId string `json:"user_id"`
		Text   string `json:"text"`
		// WithHistory 是否结合历史因子样本
		WithHistory bool `json:"with_history"`
	}

	AssessResp struct {
		Code       int             `json:"code"`
		Msg        string          `json:"msg"`
		Assessment *RiskAssessment `json:"assessment"`
	}

	// InterventionStep 干预步骤
	InterventionStep struct {
		Order                int    `json:"order"`
		Type                 string `json:"type"`
		Prompt               string `json:"prompt"`
		ExpectedResponseKind string `json:"expected_response_kind"`
	}

	// InterventionScript 干预脚本
	InterventionScript struct {
		Id               string              `json:"id"`
		CrisisLevel      string              `json:"crisis_level"`
		Steps            []*InterventionStep `json:"steps"`
		EstimatedMinutes int                 `json:"estimated_minutes"`
	}

	// Session 干预会话
	Session struct {
		Id                string              `json:"id"`
		UserId            string              `json:"user_id"`
		Status            string              `json:"status"`
		Escalated         bool                `json:"escalated"`
		InitialAssessment *RiskAssessment     `json:"initial_assessment"`
		CurrentAssessment *RiskAssessment     `json:"current_assessment"`
		Script            *InterventionScript `json:"script"`
		StepsCompleted    int                 `json:"steps_completed"`
		StartedAt         int64               `json:"started_at"`
		CompletedAt       int64               `json:"completed_at,omitempty"`
	}

	// SessionCreateReq 创建会话请求
	SessionCreateReq struct {
		UserId string `json:"user_id"`
		Text   string `json:"text"`
	}

	SessionResp struct {
		Code    int      `json:"code"`
		Msg     string   `json:"msg"`
		Session *Session `json:"session"`
	}

	// StepReq 执行步骤请求
	StepReq struct {
		SessionId string `json:"session_id"`
		StepIndex int    `json:"step_index"`
		Response  string `json:"response"`
	}

	// StepResult 步骤执行结果
	StepResult struct {
		SessionId     string          `json:"session_id"`
		StepIndex     int             `json:"step_index"`
		StepType      string          `json:"step_type"`
		Prompt        string          `json:"prompt"`
		Response      string          `json:"response"`
		NewAssessment *RiskAssessment `json:"new_assessment,omitempty"`
		IsCompleted   bool            `json:"is_completed"`
		Progress      float64         `json:"progress"`
	}

	StepResp struct {
		Code   int         `json:"code"`
		Msg    string      `json:"msg"`
		Result *StepResult `json:"result"`
	}

	// AdaptReq 会话升降级请求
	AdaptReq struct {
		SessionId string `json:"session_id"`
		Response  string `json:"response"`
	}

	// CompleteReq 结束会话请求, FinalText非空时以其重新评估作为最终评估
	CompleteReq struct {
		SessionId string `json:"session_id"`
		FinalText string `json:"final_text"`
	}

	// CancelReq 取消会话请求
	CancelReq struct {
		SessionId string `json:"session_id"`
	}

	// ProgressReq 进度查询请求
	ProgressReq struct {
		SessionId string `json:"session_id" query:"session_id"`
	}

	// Progress 会话进度
	Progress struct {
		SessionId          string  `json:"session_id"`
		InitialLevel       string  `json:"initial_level"`
		CurrentLevel       string  `json:"current_level"`
		ProgressPercentage float64 `json:"progress_percentage"`
		StepsCompleted     int     `json:"steps_completed"`
		TotalSteps         int     `json:"total_steps"`
		TimeElapsedSeconds int64   `json:"time_elapsed_seconds"`
		IsStable           bool    `json:"is_stable"`
	}

	ProgressResp struct {
		Code     int       `json:"code"`
		Msg      string    `json:"msg"`
		Progress *Progress `json:"progress"`
	}

	// SafetyReq 安全措施请求
	// 优先使用session_id对应会话的当前评估, 否则对text做即时评估
	SafetyReq struct {
		SessionId string `json:"session_id"`
		UserId    string `json:"user_id"`
		Text      string `json:"text"`
	}

	EmergencyContact struct {
		Name      string `json:"name"`
		Phone     string `json:"phone"`
		Available string `json:"available"`
	}

	SafetyPlan struct {
		EmergencyContacts    []*EmergencyContact `json:"emergency_contacts"`
		CopingStrategies     []string            `json:"coping_strategies"`
		WarningSigns         []string            `json:"warning_signs"`
		PersonalizedTriggers []string            `json:"personalized_triggers"`
	}

	SafetyMeasures struct {
		ImmediateActions []string    `json:"immediate_actions"`
		SafetyPlan       *SafetyPlan `json:"safety_plan,omitempty"`
		Resources        []string    `json:"resources"`
	}

	SafetyResp struct {
		Code     int             `json:"code"`
		Msg      string          `json:"msg"`
		Measures *SafetyMeasures `json:"measures"`
	}

	// ListSessionReq 督导端查询归档会话
	ListSessionReq struct {
		Paging
		UserId string `json:"user_id" query:"user_id"`
	}

	// ArchivedSession 归档会话记录
	ArchivedSession struct {
		Id                    string   `json:"id"`
		SessionId             string   `json:"session_id"`
		UserId                string   `json:"user_id"`
		InitialLevel          string   `json:"initial_level"`
		CurrentLevel          string   `json:"current_level"`
		Score                 float64  `json:"score"`
		Indicators            []string `json:"indicators"`
		InterventionTriggered bool     `json:"intervention_triggered"`
		Escalated             bool     `json:"escalated"`
		Status                string   `json:"status"`
		StepsCompleted        int      `json:"steps_completed"`
		TotalSteps            int      `json:"total_steps"`
		StartTime             int64    `json:"start_time"`
		EndTime               int64    `json:"end_time"`
	}

	ListSessionResp struct {
		Code     int                `json:"code"`
		Msg      string             `json:"msg"`
		Sessions []*ArchivedSession `json:"sessions"`
		Total    int64              `json:"total"`
	}

	// ListAssessmentReq 督导端查询评估记录
	ListAssessmentReq struct {
		Paging
		UserId string `json:"user_id" query:"user_id"`
	}

	// AssessmentRecord 评估归档记录
	AssessmentRecord struct {
		Id                    string   `json:"id"`
		UserId                string   `json:"user_id"`
		Level                 string   `json:"level"`
		Score                 float64  `json:"score"`
		Indicators            []string `json:"indicators"`
		EarlyWarnings         []string `json:"early_warnings"`
		Recommendations       []string `json:"recommendations"`
		InterventionTriggered bool     `json:"intervention_triggered"`
		AssessedAt            int64    `json:"assessed_at"`
	}

	ListAssessmentResp struct {
		Code        int                 `json:"code"`
		Msg         string              `json:"msg"`
		Assessments []*AssessmentRecord `json:"assessments"`
		Total       int64               `json:"total"`
	}
)
