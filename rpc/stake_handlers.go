package rpc

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"

	"stakerewards/native/rewards"
)

type stakeParams struct {
	Caller string `json:"caller"`
	Amount string `json:"amount"`
}

type durationParams struct {
	Caller   string `json:"caller"`
	Duration uint64 `json:"duration"`
}

type positionResult struct {
	Address            string `json:"address"`
	Staked             string `json:"staked"`
	Rewards            string `json:"rewards"`
	RewardPerTokenPaid string `json:"rewardPerTokenPaid"`
}

type programResult struct {
	Owner                string `json:"owner"`
	Duration             uint64 `json:"duration"`
	FinishAt             uint64 `json:"finishAt"`
	UpdatedAt            uint64 `json:"updatedAt"`
	RewardRate           string `json:"rewardRate"`
	RewardPerTokenStored string `json:"rewardPerTokenStored"`
	RewardPerToken       string `json:"rewardPerToken"`
	TotalStaked          string `json:"totalStaked"`
}

type claimResult struct {
	Address string `json:"address"`
	Paid    string `json:"paid"`
}

type earnedResult struct {
	Address string `json:"address"`
	Earned  string `json:"earned"`
}

func parseAmount(amount string) (*big.Int, error) {
	trimmed := strings.TrimSpace(amount)
	if trimmed == "" {
		return nil, fmt.Errorf("amount is required")
	}
	value, ok := new(big.Int).SetString(trimmed, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount")
	}
	if value.Sign() <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}
	return value, nil
}

func parseAddress(addr string) (common.Address, error) {
	trimmed := strings.TrimSpace(addr)
	if trimmed == "" {
		return common.Address{}, fmt.Errorf("address is required")
	}
	if !common.IsHexAddress(trimmed) {
		return common.Address{}, fmt.Errorf("invalid address %q", trimmed)
	}
	return common.HexToAddress(trimmed), nil
}

func decodeParams(r *http.Request, dst any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// statusFor maps engine failures to HTTP statuses. Unknown errors, including
// token ledger failures surfaced through the engine, read as bad requests.
func statusFor(err error) int {
	switch {
	case errors.Is(err, rewards.ErrNotAuthorized):
		return http.StatusForbidden
	case errors.Is(err, rewards.ErrRewardPeriodActive):
		return http.StatusConflict
	case errors.Is(err, rewards.ErrNilState):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadRequest
	}
}

func (s *Server) handleStake(w http.ResponseWriter, r *http.Request) {
	var params stakeParams
	if err := decodeParams(r, &params); err != nil {
		writeError(w, http.StatusBadRequest, "invalid parameter object")
		return
	}
	caller, err := parseAddress(params.Caller)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	amount, err := parseAmount(params.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	cp, err := s.engine.Stake(caller, amount)
	if err != nil {
		s.metrics.ObserveRejected("stake")
		writeError(w, statusFor(err), err.Error())
		return
	}
	s.metrics.ObserveStake()
	s.syncProgramMetrics()
	s.log.Info("stake accepted", "addr", caller.Hex(), "amount", amount.String())
	writeResult(w, http.StatusOK, positionFromCheckpoint(cp))
}

func (s *Server) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	var params stakeParams
	if err := decodeParams(r, &params); err != nil {
		writeError(w, http.StatusBadRequest, "invalid parameter object")
		return
	}
	caller, err := parseAddress(params.Caller)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	amount, err := parseAmount(params.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	cp, err := s.engine.Withdraw(caller, amount)
	if err != nil {
		s.metrics.ObserveRejected("withdraw")
		writeError(w, statusFor(err), err.Error())
		return
	}
	s.metrics.ObserveWithdraw()
	s.syncProgramMetrics()
	s.log.Info("withdraw accepted", "addr", caller.Hex(), "amount", amount.String())
	writeResult(w, http.StatusOK, positionFromCheckpoint(cp))
}

func (s *Server) handleClaim(w http.ResponseWriter, r *http.Request) {
	var params struct {
		Caller string `json:"caller"`
	}
	if err := decodeParams(r, &params); err != nil {
		writeError(w, http.StatusBadRequest, "invalid parameter object")
		return
	}
	caller, err := parseAddress(params.Caller)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	paid, err := s.engine.ClaimReward(caller)
	if err != nil {
		s.metrics.ObserveRejected("claim")
		writeError(w, statusFor(err), err.Error())
		return
	}
	if paid.Sign() > 0 {
		s.metrics.ObserveClaim(bigToFloat(paid))
		s.log.Info("rewards claimed", "addr", caller.Hex(), "paid", paid.String())
	}
	writeResult(w, http.StatusOK, claimResult{Address: caller.Hex(), Paid: paid.String()})
}

func (s *Server) handleNotifyReward(w http.ResponseWriter, r *http.Request) {
	var params stakeParams
	if err := decodeParams(r, &params); err != nil {
		writeError(w, http.StatusBadRequest, "invalid parameter object")
		return
	}
	caller, err := parseAddress(params.Caller)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	amount, err := parseAmount(params.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.engine.NotifyRewardAmount(caller, amount); err != nil {
		s.metrics.ObserveRejected("notify")
		writeError(w, statusFor(err), err.Error())
		return
	}
	s.metrics.ObserveFunding()
	s.syncProgramMetrics()
	s.log.Info("reward period funded", "amount", amount.String())
	s.writeProgram(w)
}

func (s *Server) handleSetDuration(w http.ResponseWriter, r *http.Request) {
	var params durationParams
	if err := decodeParams(r, &params); err != nil {
		writeError(w, http.StatusBadRequest, "invalid parameter object")
		return
	}
	caller, err := parseAddress(params.Caller)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.engine.SetRewardsDuration(caller, params.Duration); err != nil {
		s.metrics.ObserveRejected("duration")
		writeError(w, statusFor(err), err.Error())
		return
	}
	s.log.Info("rewards duration updated", "duration", params.Duration)
	s.writeProgram(w)
}

func (s *Server) handleGetProgram(w http.ResponseWriter, _ *http.Request) {
	s.writeProgram(w)
}

func (s *Server) handleGetPosition(w http.ResponseWriter, r *http.Request) {
	addr, err := parseAddress(chi.URLParam(r, "addr"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	staked, err := s.engine.BalanceOf(addr)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	owed, err := s.engine.Rewards(addr)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	paidMarker, err := s.engine.UserRewardPerTokenPaid(addr)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeResult(w, http.StatusOK, positionResult{
		Address:            addr.Hex(),
		Staked:             staked.String(),
		Rewards:            owed.String(),
		RewardPerTokenPaid: paidMarker.String(),
	})
}

func (s *Server) handleGetEarned(w http.ResponseWriter, r *http.Request) {
	addr, err := parseAddress(chi.URLParam(r, "addr"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	earned, err := s.engine.Earned(addr)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeResult(w, http.StatusOK, earnedResult{Address: addr.Hex(), Earned: earned.String()})
}

func (s *Server) writeProgram(w http.ResponseWriter) {
	program, err := s.engine.Program()
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	rpt, err := s.engine.RewardPerToken()
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeResult(w, http.StatusOK, programResult{
		Owner:                s.engine.Owner().Hex(),
		Duration:             program.Duration,
		FinishAt:             program.FinishAt,
		UpdatedAt:            program.UpdatedAt,
		RewardRate:           program.RewardRate.String(),
		RewardPerTokenStored: program.RewardPerTokenStored.String(),
		RewardPerToken:       rpt.String(),
		TotalStaked:          program.TotalStaked.String(),
	})
}

func (s *Server) syncProgramMetrics() {
	if s.metrics == nil {
		return
	}
	program, err := s.engine.Program()
	if err != nil {
		return
	}
	s.metrics.SetTotalStaked(bigToFloat(program.TotalStaked))
	s.metrics.SetRewardRate(bigToFloat(program.RewardRate))
}

func positionFromCheckpoint(cp *rewards.Checkpoint) positionResult {
	return positionResult{
		Address:            cp.Account.Hex(),
		Staked:             cp.Stake.String(),
		Rewards:            cp.Rewards.String(),
		RewardPerTokenPaid: cp.RewardPerTokenPaid.String(),
	}
}

func bigToFloat(value *big.Int) float64 {
	if value == nil {
		return 0
	}
	f, _ := new(big.Float).SetInt(value).Float64()
	return f
}
