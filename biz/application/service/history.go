package service

import (
	"context"
	"github.com/google/wire"
	"github.com/jinzhu/copier"
	"github.com/xh-polaris/psych-crisis/biz/adaptor/cmd"
	"github.com/xh-polaris/psych-crisis/biz/infrastructure/mapper/assessment"
	"github.com/xh-polaris/psych-crisis/biz/infrastructure/mapper/session"
)

type IHistoryService interface {
	ListSession(ctx context.Context, req *cmd.ListSessionReq) (*cmd.ListSessionResp, error)
	ListAssessment(ctx context.Context, req *cmd.ListAssessmentReq) (*cmd.ListAssessmentResp, error)
}

// HistoryService 督导端只读查询, 不做任何修改
type HistoryService struct {
	SessionMapper    *session.MongoMapper
	AssessmentMapper *assessment.MongoMapper
}

var HistoryServiceSet = wire.NewSet(
	wire.Struct(new(HistoryService), "*"),
	wire.Bind(new(IHistoryService), new(*HistoryService)),
)

func (s *HistoryService) ListSession(ctx context.Context, req *cmd.ListSessionReq) (*cmd.ListSessionResp, error) {
	data, total, err := s.SessionMapper.FindMany(ctx, req.UserId, &req.Paging)
	if err != nil {
		return nil, err
	}

	sessions := make([]*cmd.ArchivedSession, 0, len(data))
	for _, d := range data {
		cs := &cmd.ArchivedSession{}
		if err := copier.Copy(cs, d); err != nil {
			return nil, err
		}
		cs.Id = d.ID.Hex()
		cs.StartTime = d.StartTime.Unix()
		cs.EndTime = d.EndTime.Unix()
		sessions = append(sessions, cs)
	}
	return &cmd.ListSessionResp{
		Code:     0,
		Msg:      "success",
		Sessions: sessions,
		Total:    total,
	}, nil
}

func (s *HistoryService) ListAssessment(ctx context.Context, req *cmd.ListAssessmentReq) (*cmd.ListAssessmentResp, error) {
	data, total, err := s.AssessmentMapper.FindMany(ctx, req.UserId, &req.Paging)
	if err != nil {
		return nil, err
	}

	records := make([]*cmd.AssessmentRecord, 0, len(data))
	for _, d := range data {
		r := &cmd.AssessmentRecord{}
		if err := copier.Copy(r, d); err != nil {
			return nil, err
		}
		r.Id = d.ID.Hex()
		r.AssessedAt = d.AssessedAt.Unix()
		records = append(records, r)
	}
	return &cmd.ListAssessmentResp{
		Code:        0,
		Msg:         "success",
		Assessments: records,
		Total:       total,
	}, nil
}
