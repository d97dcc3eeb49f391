package health

import (
	"net"
	"net/http"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"gomoku_arena/internal/httpresponse"
)

// ServiceName is the health-check name of the session engine.
const ServiceName = "gomoku.arena.Session"

// Server exposes the standard gRPC health service for orchestrators.
type Server struct {
	grpc   *grpc.Server
	health *grpchealth.Server
	log    *zap.SugaredLogger
}

func NewServer(log *zap.SugaredLogger) *Server {
	gs := grpc.NewServer()
	hs := grpchealth.NewServer()
	healthpb.RegisterHealthServer(gs, hs)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	return &Server{grpc: gs, health: hs, log: log}
}

func (s *Server) Serve(lis net.Listener) error {
	s.log.Infof("gRPC health service listening on %s", lis.Addr())
	return s.grpc.Serve(lis)
}

// Drain reports NOT_SERVING so traffic moves away before shutdown.
func (s *Server) Drain() {
	s.health.Shutdown()
}

func (s *Server) Stop() {
	s.health.Shutdown()
	s.grpc.GracefulStop()
}

// HandleHTTP mirrors the gRPC status for plain HTTP probes.
func (s *Server) HandleHTTP(w http.ResponseWriter, r *http.Request) {
	resp, err := s.health.Check(r.Context(), &healthpb.HealthCheckRequest{Service: ServiceName})
	if err != nil {
		s.log.Warnw("health check failed", "error", err)
		httpresponse.WriteError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	status := http.StatusOK
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		status = http.StatusServiceUnavailable
	}
	httpresponse.WriteResponseWithStatus(w, status, map[string]string{"status": resp.GetStatus().String()})
}
