package rpc

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"stakerewards/native/rewards"
	"stakerewards/native/token"
)

type mintParams struct {
	Caller string `json:"caller"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

type approveParams struct {
	Caller  string `json:"caller"`
	Spender string `json:"spender"`
	Amount  string `json:"amount"`
}

type balanceResult struct {
	Token   string `json:"token"`
	Address string `json:"address"`
	Balance string `json:"balance"`
}

type allowanceResult struct {
	Token     string `json:"token"`
	Owner     string `json:"owner"`
	Spender   string `json:"spender"`
	Allowance string `json:"allowance"`
}

// ledgerFor resolves the {token} route segment onto one of the two ledgers the
// service custodies.
func (s *Server) ledgerFor(name string) (*token.Ledger, error) {
	switch name {
	case "staking":
		if s.stakingLedger == nil {
			return nil, fmt.Errorf("staking token ops not configured")
		}
		return s.stakingLedger, nil
	case "rewards":
		if s.rewardsLedger == nil {
			return nil, fmt.Errorf("rewards token ops not configured")
		}
		return s.rewardsLedger, nil
	default:
		return nil, fmt.Errorf("unknown token %q", name)
	}
}

// handleMint credits tokens to an account. Minting is an operator action and
// is restricted to the program owner.
func (s *Server) handleMint(w http.ResponseWriter, r *http.Request) {
	ledger, err := s.ledgerFor(chi.URLParam(r, "token"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	var params mintParams
	if err := decodeParams(r, &params); err != nil {
		writeError(w, http.StatusBadRequest, "invalid parameter object")
		return
	}
	caller, err := parseAddress(params.Caller)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if caller != s.engine.Owner() {
		writeError(w, http.StatusForbidden, rewards.ErrNotAuthorized.Error())
		return
	}
	to, err := parseAddress(params.To)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	amount, err := parseAmount(params.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := ledger.Mint(to, amount); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.log.Info("tokens minted", "token", ledger.Symbol(), "to", to.Hex(), "amount", amount.String())
	writeResult(w, http.StatusOK, balanceResult{
		Token:   ledger.Symbol(),
		Address: to.Hex(),
		Balance: ledger.BalanceOf(to).String(),
	})
}

// handleApprove records an allowance on behalf of the caller. Staking requires
// the pool to be approved as spender, so clients call this before /v1/stake.
func (s *Server) handleApprove(w http.ResponseWriter, r *http.Request) {
	ledger, err := s.ledgerFor(chi.URLParam(r, "token"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	var params approveParams
	if err := decodeParams(r, &params); err != nil {
		writeError(w, http.StatusBadRequest, "invalid parameter object")
		return
	}
	caller, err := parseAddress(params.Caller)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	spender, err := parseAddress(params.Spender)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	amount, err := parseAmount(params.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := ledger.Approve(caller, spender, amount); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeResult(w, http.StatusOK, allowanceResult{
		Token:     ledger.Symbol(),
		Owner:     caller.Hex(),
		Spender:   spender.Hex(),
		Allowance: ledger.Allowance(caller, spender).String(),
	})
}

func (s *Server) handleTokenBalance(w http.ResponseWriter, r *http.Request) {
	ledger, err := s.ledgerFor(chi.URLParam(r, "token"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	addr, err := parseAddress(chi.URLParam(r, "addr"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeResult(w, http.StatusOK, balanceResult{
		Token:   ledger.Symbol(),
		Address: addr.Hex(),
		Balance: ledger.BalanceOf(addr).String(),
	})
}
