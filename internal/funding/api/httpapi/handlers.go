package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/louisbranch/fundraising.space/internal/funding/domain/campaign"
	"github.com/louisbranch/fundraising.space/internal/funding/storage"
	"github.com/louisbranch/fundraising.space/internal/platform/httpx"
)

type createCampaignRequest struct {
	Goal         int64 `json:"goal"`
	DurationDays int   `json:"duration_days"`
}

type createCampaignResponse struct {
	ID uint64 `json:"id"`
}

type contributeRequest struct {
	Amount int64 `json:"amount"`
}

type finalizeResponse struct {
	Successful bool `json:"successful"`
}

type withdrawResponse struct {
	Amount int64 `json:"amount"`
}

type campaignResponse struct {
	ID          uint64    `json:"id"`
	Creator     string    `json:"creator"`
	Goal        int64     `json:"goal"`
	Deadline    time.Time `json:"deadline"`
	TotalRaised int64     `json:"total_raised"`
	Finalized   bool      `json:"finalized"`
	Status      string    `json:"status"`
}

type contributionResponse struct {
	Amount int64 `json:"amount"`
}

type eventResponse struct {
	Seq       uint64          `json:"seq"`
	Hash      string          `json:"hash"`
	Timestamp time.Time       `json:"timestamp"`
	Type      string          `json:"type"`
	Actor     string          `json:"actor"`
	Payload   json.RawMessage `json:"payload"`
}

type eventsResponse struct {
	Events []eventResponse `json:"events"`
}

// campaignIDFromPath parses the {id} path segment. Malformed ids report the
// same way as missing campaigns.
func campaignIDFromPath(r *http.Request) (uint64, error) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, storage.ErrNotFound
	}
	return id, nil
}

func (s *Server) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	caller, err := s.callerFromRequest(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	var req createCampaignRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}
	created, err := s.engine.CreateCampaign(httpx.RequestContext(r), campaign.CreateInput{
		Creator:      caller,
		Goal:         req.Goal,
		DurationDays: req.DurationDays,
	}, s.now())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusCreated, createCampaignResponse{ID: created.ID})
}

func (s *Server) handleContribute(w http.ResponseWriter, r *http.Request) {
	caller, err := s.callerFromRequest(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	id, err := campaignIDFromPath(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	var req contributeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}
	if _, err := s.engine.Contribute(httpx.RequestContext(r), id, caller, req.Amount, s.now()); err != nil {
		httpx.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFinalize(w http.ResponseWriter, r *http.Request) {
	caller, err := s.callerFromRequest(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	id, err := campaignIDFromPath(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	finalized, err := s.engine.Finalize(httpx.RequestContext(r), id, caller, s.now())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, finalizeResponse{
		Successful: finalized.Status == campaign.StatusFinalizedSuccessful,
	})
}

func (s *Server) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	caller, err := s.callerFromRequest(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	id, err := campaignIDFromPath(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	amount, err := s.engine.Withdraw(httpx.RequestContext(r), id, caller, s.now())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, withdrawResponse{Amount: amount})
}

func (s *Server) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := campaignIDFromPath(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	details, err := s.engine.GetCampaignDetails(httpx.RequestContext(r), id)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	c := details.Campaign
	_ = httpx.WriteJSON(w, http.StatusOK, campaignResponse{
		ID:          c.ID,
		Creator:     c.Creator,
		Goal:        c.Goal,
		Deadline:    c.Deadline,
		TotalRaised: c.TotalRaised,
		Finalized:   c.Status.Finalized(),
		Status:      c.Status.String(),
	})
}

func (s *Server) handleGetContribution(w http.ResponseWriter, r *http.Request) {
	id, err := campaignIDFromPath(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	contributor := r.PathValue("contributor")
	amount, err := s.engine.GetContribution(httpx.RequestContext(r), id, contributor)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, contributionResponse{Amount: amount})
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	id, err := campaignIDFromPath(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	journal, err := s.engine.ListEvents(httpx.RequestContext(r), id)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	resp := eventsResponse{Events: make([]eventResponse, 0, len(journal))}
	for _, evt := range journal {
		resp.Events = append(resp.Events, eventResponse{
			Seq:       evt.Seq,
			Hash:      evt.Hash,
			Timestamp: evt.Timestamp,
			Type:      string(evt.Type),
			Actor:     evt.Actor,
			Payload:   json.RawMessage(evt.PayloadJSON),
		})
	}
	_ = httpx.WriteJSON(w, http.StatusOK, resp)
}
