package ecosim

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"connectrpc.com/connect"
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/agentsociety-econsim/utils"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	// ServiceName 经济仿真查询服务名
	ServiceName = "econsim.v1.EconomyService"

	NowProcedure           = "/" + ServiceName + "/Now"
	GetIndicatorsProcedure = "/" + ServiceName + "/GetIndicators"
	GetSnapshotProcedure   = "/" + ServiceName + "/GetSnapshot"
)

// Server 实现查询服务
// 说明：只读，数据来自Recorder，可在仿真运行时并发访问
type Server struct {
	rec *Recorder
}

// NewServer 创建新的服务器实例
func NewServer(rec *Recorder) *Server {
	return &Server{rec: rec}
}

// NewHandler 构造服务的HTTP处理器
// 返回：挂载路径与处理器，用法同connect生成代码
func NewHandler(s *Server, opts ...connect.HandlerOption) (string, http.Handler) {
	now := connect.NewUnaryHandler(NowProcedure, s.Now, opts...)
	indicators := connect.NewUnaryHandler(GetIndicatorsProcedure, s.GetIndicators, opts...)
	snapshot := connect.NewUnaryHandler(GetSnapshotProcedure, s.GetSnapshot, opts...)
	return "/" + ServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case NowProcedure:
			now.ServeHTTP(w, r)
		case GetIndicatorsProcedure:
			indicators.ServeHTTP(w, r)
		case GetSnapshotProcedure:
			snapshot.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// RunServer 启动查询服务，ctx结束时优雅关闭
func RunServer(ctx context.Context, address string, rec *Recorder) error {
	mux := http.NewServeMux()
	path, handler := NewHandler(NewServer(rec))
	mux.Handle(path, handler)
	srv := &http.Server{Addr: address, Handler: mux}
	go func() {
		<-ctx.Done()
		if err := srv.Shutdown(context.Background()); err != nil {
			log.Warnf("server shutdown: %v", err)
		}
	}()
	log.Infof("Server listening at %v", address)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Now 获取当前仿真日期
func (s *Server) Now(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[structpb.Struct], error) {
	day, month := s.rec.Now()
	res, err := structpb.NewStruct(map[string]any{
		"day":   day,
		"month": month,
	})
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(res), nil
}

// GetIndicators 获取指标历史
// 参数：可选字段last，只返回最近last条
func (s *Server) GetIndicators(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	history := s.rec.History()
	if v, ok := req.Msg.GetFields()["last"]; ok {
		last := int(v.GetNumberValue())
		if last < 0 {
			return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("last must not be negative, got %d", last))
		}
		if last < len(history) {
			history = history[len(history)-last:]
		}
	}
	res, err := structpb.NewStruct(map[string]any{
		"indicators": lo.Map(history, func(i Indicators, _ int) any {
			return i.asMap()
		}),
	})
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(res), nil
}

// GetSnapshot 获取最新快照
// 参数：可选字段household_ids与company_ids，只返回指定ID的智能体
// 说明：任一ID不存在时返回NotFound
func (s *Server) GetSnapshot(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	snapshot, ok := s.rec.Latest()
	if !ok {
		return nil, connect.NewError(connect.CodeNotFound, errors.New("no snapshot recorded"))
	}
	var failed []int32
	snapshot.Households, failed = utils.FindByID(snapshot.Households, func(h HouseholdState) int32 {
		return h.ID
	}, idsOf(req.Msg, "household_ids"))
	if len(failed) > 0 {
		return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("households %v not found", failed))
	}
	snapshot.Companies, failed = utils.FindByID(snapshot.Companies, func(c CompanyState) int32 {
		return c.ID
	}, idsOf(req.Msg, "company_ids"))
	if len(failed) > 0 {
		return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("companies %v not found", failed))
	}
	res, err := structpb.NewStruct(snapshotAsMap(snapshot))
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(res), nil
}

// idsOf 读取请求中的ID列表字段，缺失时为空
func idsOf(msg *structpb.Struct, field string) []int32 {
	return lo.Map(msg.GetFields()[field].GetListValue().GetValues(), func(v *structpb.Value, _ int) int32 {
		return int32(v.GetNumberValue())
	})
}

func snapshotAsMap(s Snapshot) map[string]any {
	ids := func(v []int32) []any {
		return lo.Map(v, func(id int32, _ int) any { return id })
	}
	return map[string]any{
		"day":   s.Day,
		"month": s.Month,
		"households": lo.Map(s.Households, func(h HouseholdState, _ int) any {
			return map[string]any{
				"id":               h.ID,
				"wealth":           h.Wealth,
				"reservation_wage": h.ReservationWage,
				"consumption":      h.Consumption,
				"employer_id":      h.EmployerID,
				"suppliers":        ids(h.Suppliers),
			}
		}),
		"companies": lo.Map(s.Companies, func(c CompanyState, _ int) any {
			return map[string]any{
				"id":                    c.ID,
				"wealth":                c.Wealth,
				"wage":                  c.Wage,
				"price":                 c.Price,
				"inventory":             c.Inventory,
				"demand":                c.Demand,
				"sold":                  c.Sold,
				"looking_for_worker":    c.LookingForWorker,
				"employees":             ids(c.Employees),
				"marketing_investments": c.MarketingInvestments,
				"marketing_boost":       c.MarketingBoost,
				"full_workplaces":       c.FullWorkplaces,
			}
		}),
	}
}
