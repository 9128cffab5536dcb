package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

type optimizeRequest struct {
	Primary   string          `json:"primary" validate:"required"`
	Secondary string          `json:"secondary" validate:"required"`
	Start     float64         `json:"start" validate:"gte=0"`
	Best      bool            `json:"best"`
	Crew      json.RawMessage `json:"crew" validate:"required_without=Best"`
}

// service answers optimize requests for the Lambda and HTTP transports.
type service struct {
	catalog *Catalog
	oracle  DurationOracle
	cfg     Config
	log     *zap.Logger
}

func newService(cat *Catalog, oracle DurationOracle, cfg Config, log *zap.Logger) *service {
	return &service{catalog: cat, oracle: oracle, cfg: cfg, log: log}
}

type errorBody struct {
	Error string `json:"error"`
}

// optimize decodes body, runs one optimization and returns the HTTP status
// with the payload to encode.
func (s *service) optimize(body []byte) (int, any) {
	var req optimizeRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return http.StatusBadRequest, errorBody{"invalid JSON: " + err.Error()}
	}
	if err := validate.Struct(req); err != nil {
		return http.StatusBadRequest, errorBody{validationMessage(err)}
	}
	primary, ok := parseSkill(req.Primary)
	if !ok {
		return http.StatusBadRequest, errorBody{"primary must be cmd|dip|sec|eng|sci|med"}
	}
	secondary, ok := parseSkill(req.Secondary)
	if !ok {
		return http.StatusBadRequest, errorBody{"secondary must be cmd|dip|sec|eng|sci|med"}
	}
	start := req.Start
	if start == 0 {
		start = s.cfg.DefaultStart
	}

	input := &InputData{Catalog: s.catalog}
	if !req.Best {
		roster, err := parseRosterEntries(s.catalog, gjson.ParseBytes(req.Crew))
		if err != nil {
			return statusFor(err), errorBody{err.Error()}
		}
		input.Roster = roster
	}

	r, err := OptimizeFrom(input.Source(req.Best), primary, secondary, start, s.oracle, s.cfg, s.log)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			s.log.Error("optimize failed", zap.Error(err))
		}
		return status, errorBody{err.Error()}
	}
	return http.StatusOK, newOptimizeResponse(r, true)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidSkill),
		errors.Is(err, ErrInsufficientRoster),
		errors.Is(err, ErrInvalidRoster):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field() + " failed " + verrs[0].Tag()
	}
	return err.Error()
}
