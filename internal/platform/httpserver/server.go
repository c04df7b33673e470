package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	campaignservice "collabo/contexts/collab-pipeline/campaign-service"
	campaignerrors "collabo/contexts/collab-pipeline/campaign-service/domain/errors"
	campaignhttp "collabo/contexts/collab-pipeline/campaign-service/transport/http"
	contentservice "collabo/contexts/collab-pipeline/content-service"
	contenterrors "collabo/contexts/collab-pipeline/content-service/domain/errors"
	contenthttp "collabo/contexts/collab-pipeline/content-service/transport/http"
	settlementservice "collabo/contexts/finance-core/settlement-service"
	settlementerrors "collabo/contexts/finance-core/settlement-service/domain/errors"
	settlementhttp "collabo/contexts/finance-core/settlement-service/transport/http"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "collabo/internal/platform/httpserver/docs"
)

type Server struct {
	mux        *http.ServeMux
	logger     *slog.Logger
	addr       string
	campaigns  campaignservice.Module
	content    contentservice.Module
	settlement settlementservice.Module
}

func New(
	campaigns campaignservice.Module,
	content contentservice.Module,
	settlement settlementservice.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:        http.NewServeMux(),
		logger:     logger,
		addr:       addr,
		campaigns:  campaigns,
		content:    content,
		settlement: settlement,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/v1/campaigns", s.handleCreateCampaign)
	s.mux.HandleFunc("GET /api/v1/campaigns", s.handleListCampaigns)
	s.mux.HandleFunc("GET /api/v1/campaigns/{campaign_id}", s.handleGetCampaign)
	s.mux.HandleFunc("POST /api/v1/campaigns/{campaign_id}/subjects", s.handleAddSubject)
	s.mux.HandleFunc("GET /api/v1/campaigns/{campaign_id}/subjects", s.handleListSubjects)
	s.mux.HandleFunc("POST /api/v1/subjects/{subject_id}/decision", s.handleDecideSubject)
	s.mux.HandleFunc("POST /api/v1/campaigns/{campaign_id}/stage/recompute", s.handleRecomputeStage)
	s.mux.HandleFunc("GET /api/v1/campaigns/{campaign_id}/settlement", s.handleGetCampaignSettlement)

	s.mux.HandleFunc("POST /api/v1/artifacts", s.handleCreateArtifact)
	s.mux.HandleFunc("GET /api/v1/artifacts", s.handleListArtifacts)
	s.mux.HandleFunc("GET /api/v1/artifacts/{artifact_id}", s.handleGetArtifact)
	s.mux.HandleFunc("POST /api/v1/artifacts/{artifact_id}/revisions", s.handleRequestRevision)
	s.mux.HandleFunc("POST /api/v1/artifacts/{artifact_id}/feedback", s.handleGiveFeedback)
	s.mux.HandleFunc("POST /api/v1/artifacts/{artifact_id}/approve", s.handleApproveArtifact)

	s.mux.HandleFunc("POST /api/v1/settlements", s.handleOpenSettlement)
	s.mux.HandleFunc("GET /api/v1/settlements/{settlement_id}", s.handleGetSettlement)
	s.mux.HandleFunc("POST /api/v1/settlements/{settlement_id}/invoice", s.handleRequestInvoice)
	s.mux.HandleFunc("POST /api/v1/settlements/{settlement_id}/invoice/review", s.handleReviewInvoice)
	s.mux.HandleFunc("POST /api/v1/settlements/{settlement_id}/pay", s.handlePay)
}

func (s *Server) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req campaignhttp.CreateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCampaignError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.campaigns.Handler.CreateCampaignHandler(r.Context(), req)
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	resp, err := s.campaigns.Handler.ListCampaignsHandler(r.Context())
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	resp, err := s.campaigns.Handler.GetCampaignHandler(r.Context(), r.PathValue("campaign_id"))
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAddSubject(w http.ResponseWriter, r *http.Request) {
	actorID := resolveActorID(r)
	if actorID == "" {
		writeCampaignError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	var req campaignhttp.AddSubjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCampaignError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.campaigns.Handler.AddSubjectHandler(r.Context(), actorID, r.PathValue("campaign_id"), req)
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListSubjects(w http.ResponseWriter, r *http.Request) {
	resp, err := s.campaigns.Handler.ListSubjectsHandler(r.Context(), r.PathValue("campaign_id"))
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDecideSubject(w http.ResponseWriter, r *http.Request) {
	actorID := resolveActorID(r)
	if actorID == "" {
		writeCampaignError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	var req campaignhttp.DecideSubjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCampaignError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.campaigns.Handler.DecideSubjectHandler(r.Context(), actorID, r.PathValue("subject_id"), req)
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRecomputeStage(w http.ResponseWriter, r *http.Request) {
	resp, err := s.campaigns.Handler.RecomputeStageHandler(r.Context(), r.PathValue("campaign_id"))
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateArtifact(w http.ResponseWriter, r *http.Request) {
	actorID := resolveActorID(r)
	if actorID == "" {
		writeContentError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	var req contenthttp.CreateArtifactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeContentError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.content.Handler.CreateArtifactHandler(r.Context(), actorID, req)
	if err != nil {
		writeContentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListArtifacts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	resp, err := s.content.Handler.ListArtifactsHandler(
		r.Context(),
		query.Get("campaign_id"),
		query.Get("subject_id"),
		query.Get("kind"),
		query.Get("status"),
	)
	if err != nil {
		writeContentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetArtifact(w http.ResponseWriter, r *http.Request) {
	resp, err := s.content.Handler.GetArtifactHandler(r.Context(), r.PathValue("artifact_id"))
	if err != nil {
		writeContentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRequestRevision(w http.ResponseWriter, r *http.Request) {
	actorID := resolveActorID(r)
	if actorID == "" {
		writeContentError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	var req contenthttp.RequestRevisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeContentError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.content.Handler.RequestRevisionHandler(r.Context(), actorID, r.PathValue("artifact_id"), req)
	if err != nil {
		writeContentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGiveFeedback(w http.ResponseWriter, r *http.Request) {
	actorID := resolveActorID(r)
	if actorID == "" {
		writeContentError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	var req contenthttp.GiveFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeContentError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.content.Handler.GiveFeedbackHandler(r.Context(), actorID, r.PathValue("artifact_id"), req)
	if err != nil {
		writeContentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleApproveArtifact(w http.ResponseWriter, r *http.Request) {
	actorID := resolveActorID(r)
	if actorID == "" {
		writeContentError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	if err := s.content.Handler.ApproveArtifactHandler(r.Context(), actorID, r.PathValue("artifact_id")); err != nil {
		writeContentDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleOpenSettlement(w http.ResponseWriter, r *http.Request) {
	actorID := resolveActorID(r)
	if actorID == "" {
		writeSettlementError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	var req settlementhttp.OpenSettlementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSettlementError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.settlement.Handler.OpenSettlementHandler(r.Context(), actorID, req)
	if err != nil {
		writeSettlementDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetSettlement(w http.ResponseWriter, r *http.Request) {
	resp, err := s.settlement.Handler.GetSettlementHandler(r.Context(), r.PathValue("settlement_id"))
	if err != nil {
		writeSettlementDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetCampaignSettlement(w http.ResponseWriter, r *http.Request) {
	resp, err := s.settlement.Handler.GetCampaignSettlementHandler(r.Context(), r.PathValue("campaign_id"))
	if err != nil {
		writeSettlementDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRequestInvoice(w http.ResponseWriter, r *http.Request) {
	actorID := resolveActorID(r)
	if actorID == "" {
		writeSettlementError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	var req settlementhttp.RequestInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSettlementError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.settlement.Handler.RequestInvoiceHandler(r.Context(), actorID, r.PathValue("settlement_id"), req); err != nil {
		writeSettlementDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReviewInvoice(w http.ResponseWriter, r *http.Request) {
	actorID := resolveActorID(r)
	if actorID == "" {
		writeSettlementError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	var req settlementhttp.ReviewInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSettlementError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.settlement.Handler.ReviewInvoiceHandler(r.Context(), actorID, r.PathValue("settlement_id"), req); err != nil {
		writeSettlementDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePay(w http.ResponseWriter, r *http.Request) {
	actorID := resolveActorID(r)
	if actorID == "" {
		writeSettlementError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	var req settlementhttp.PayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSettlementError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.settlement.Handler.PayHandler(r.Context(), actorID, r.PathValue("settlement_id"), req); err != nil {
		writeSettlementDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeCampaignDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, campaignerrors.ErrCampaignNotFound):
		writeCampaignError(w, http.StatusNotFound, "campaign_not_found", err.Error())
	case errors.Is(err, campaignerrors.ErrSubjectNotFound):
		writeCampaignError(w, http.StatusNotFound, "subject_not_found", err.Error())
	case errors.Is(err, campaignerrors.ErrInvalidCampaignInput),
		errors.Is(err, campaignerrors.ErrInvalidSubjectInput):
		writeCampaignError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, campaignerrors.ErrInvalidSubjectStatus):
		writeCampaignError(w, http.StatusConflict, "invalid_subject_status", err.Error())
	case errors.Is(err, campaignerrors.ErrDuplicateSubject):
		writeCampaignError(w, http.StatusConflict, "duplicate_subject", err.Error())
	case errors.Is(err, campaignerrors.ErrUnauthorizedActor):
		writeCampaignError(w, http.StatusUnauthorized, "unauthorized", err.Error())
	default:
		writeCampaignError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeContentDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, contenterrors.ErrArtifactNotFound):
		writeContentError(w, http.StatusNotFound, "artifact_not_found", err.Error())
	case errors.Is(err, contenterrors.ErrInvalidArtifactInput):
		writeContentError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, contenterrors.ErrRevisionConflict):
		writeContentError(w, http.StatusConflict, "revision_conflict", err.Error())
	case errors.Is(err, contenterrors.ErrInvalidStatusTransition),
		errors.Is(err, contenterrors.ErrRevisionNotPending):
		writeContentError(w, http.StatusConflict, "invalid_status_transition", err.Error())
	case errors.Is(err, contenterrors.ErrDuplicateArtifact):
		writeContentError(w, http.StatusConflict, "duplicate_artifact", err.Error())
	case errors.Is(err, contenterrors.ErrArtifactIncomplete):
		writeContentError(w, http.StatusUnprocessableEntity, "artifact_incomplete", err.Error())
	case errors.Is(err, contenterrors.ErrStageLocked):
		writeContentError(w, http.StatusConflict, "stage_locked", err.Error())
	case errors.Is(err, contenterrors.ErrUnauthorizedActor):
		writeContentError(w, http.StatusUnauthorized, "unauthorized", err.Error())
	default:
		writeContentError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeSettlementDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, settlementerrors.ErrSettlementNotFound):
		writeSettlementError(w, http.StatusNotFound, "settlement_not_found", err.Error())
	case errors.Is(err, settlementerrors.ErrSettlementExists):
		writeSettlementError(w, http.StatusConflict, "settlement_exists", err.Error())
	case errors.Is(err, settlementerrors.ErrInvalidSettlementInput):
		writeSettlementError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, settlementerrors.ErrInvalidStatusTransition):
		writeSettlementError(w, http.StatusConflict, "invalid_status_transition", err.Error())
	case errors.Is(err, settlementerrors.ErrStageLocked):
		writeSettlementError(w, http.StatusConflict, "stage_locked", err.Error())
	case errors.Is(err, settlementerrors.ErrUnauthorizedActor):
		writeSettlementError(w, http.StatusUnauthorized, "unauthorized", err.Error())
	default:
		writeSettlementError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeCampaignError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, campaignhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeContentError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, contenthttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeSettlementError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, settlementhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func resolveActorID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("X-User-Id"))
}
