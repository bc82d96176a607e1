package rpc

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"stakerewards/native/rewards"
	"stakerewards/native/token"
	"stakerewards/observability/metrics"
)

// Server exposes the staking engine over HTTP. Mutating endpoints take the
// caller identity in the request body; the engine enforces authorization for
// the administrative ones.
type Server struct {
	engine        *rewards.Engine
	log           *slog.Logger
	metrics       *metrics.StakingMetrics
	stakingLedger *token.Ledger
	rewardsLedger *token.Ledger
}

// NewServer wires the handler set around an engine.
func NewServer(engine *rewards.Engine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{engine: engine, log: logger}
}

// SetMetrics enables prometheus instrumentation of the mutating endpoints.
func (s *Server) SetMetrics(m *metrics.StakingMetrics) { s.metrics = m }

// SetLedgers exposes operator endpoints for the two token ledgers: mint
// (owner-gated) and approve. Without them an in-process deployment has no way
// to seed balances or allowances, and the stake and funding paths can never
// succeed.
func (s *Server) SetLedgers(staking, rewardsLedger *token.Ledger) {
	s.stakingLedger = staking
	s.rewardsLedger = rewardsLedger
}

// Router builds the HTTP routing table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(v1 chi.Router) {
		v1.Post("/stake", s.handleStake)
		v1.Post("/withdraw", s.handleWithdraw)
		v1.Post("/claim", s.handleClaim)
		v1.Post("/reward/notify", s.handleNotifyReward)
		v1.Post("/reward/duration", s.handleSetDuration)
		v1.Get("/program", s.handleGetProgram)
		v1.Get("/position/{addr}", s.handleGetPosition)
		v1.Get("/earned/{addr}", s.handleGetEarned)

		v1.Route("/token/{token}", func(tk chi.Router) {
			tk.Post("/mint", s.handleMint)
			tk.Post("/approve", s.handleApprove)
			tk.Get("/balance/{addr}", s.handleTokenBalance)
		})
	})
	return r
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeResult(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeResult(w, status, errorResponse{Error: message})
}
