package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stocksim/internal/repository"
	"stocksim/internal/service"
)

// JournalHandler covers diary entries and retrospectives.
type JournalHandler struct {
	Journals *service.JournalService
}

func (h *JournalHandler) Register(r *gin.Engine) {
	r.GET("/api/journals", h.listJournals)
	r.POST("/api/journals", h.createJournal)
	r.GET("/api/reviews", h.listReviews)
	r.POST("/api/reviews", h.createReview)
}

// @Summary List a simulation's journal entries
// @Tags journals
// @Param simulationId query int true "simulation id"
// @Param limit query int false "limit"
// @Param offset query int false "offset"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /api/journals [get]
func (h *JournalHandler) listJournals(c *gin.Context) {
	simID := uint64Query(c, "simulationId")
	if simID == 0 {
		Error(c, http.StatusBadRequest, "simulationId is required")
		return
	}
	items, err := h.Journals.ListJournals(c.Request.Context(), repository.ListJournalsParams{
		SimulationID: simID,
		Limit:        intQuery(c, "limit", 100),
		Offset:       intQuery(c, "offset", 0),
		Asc:          boolPtr(false),
	})
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, gin.H{"journals": items})
}

type createJournalRequest struct {
	SimulationID uint64 `json:"simulation_id"`
	EntryDate    string `json:"entry_date"`
	Title        string `json:"title"`
	Content      string `json:"content"`
}

// @Summary Create a journal entry
// @Tags journals
// @Accept json
// @Param request body createJournalRequest true "journal entry"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/journals [post]
func (h *JournalHandler) createJournal(c *gin.Context) {
	var req createJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	item, err := h.Journals.CreateJournal(c.Request.Context(), service.CreateJournalInput{
		SimulationID: req.SimulationID,
		EntryDate:    req.EntryDate,
		Title:        req.Title,
		Content:      req.Content,
	})
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, item)
}

// @Summary List a simulation's reviews
// @Tags reviews
// @Param simulationId query int true "simulation id"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /api/reviews [get]
func (h *JournalHandler) listReviews(c *gin.Context) {
	simID := uint64Query(c, "simulationId")
	if simID == 0 {
		Error(c, http.StatusBadRequest, "simulationId is required")
		return
	}
	items, err := h.Journals.ListReviews(c.Request.Context(), simID)
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, gin.H{"reviews": items})
}

type createReviewRequest struct {
	SimulationID uint64 `json:"simulation_id"`
	ReviewDate   string `json:"review_date"`
	Outcome      string `json:"outcome"`
	Lessons      string `json:"lessons"`
}

// @Summary Create a post-simulation review
// @Tags reviews
// @Accept json
// @Param request body createReviewRequest true "review"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/reviews [post]
func (h *JournalHandler) createReview(c *gin.Context) {
	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	item, err := h.Journals.CreateReview(c.Request.Context(), service.CreateReviewInput{
		SimulationID: req.SimulationID,
		ReviewDate:   req.ReviewDate,
		Outcome:      req.Outcome,
		Lessons:      req.Lessons,
	})
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, item)
}
