package runs

import (
	"errors"
	"strings"

	"recon-engine/core/history"
	"recon-engine/core/logger"
	"recon-engine/core/rules"
	"recon-engine/core/source"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DefaultSourceKinds are the source kinds a posted rule set may use unless configured.
// File and query sources would let a caller read server files or run SQL.
var DefaultSourceKinds = []source.Kind{source.KindObject, source.KindTable}

// Handler handles HTTP requests for runs.
type Handler struct {
	service *Service
	kinds   []source.Kind
}

// NewHandler creates a new HTTP handler accepting sources of kinds.
// No kinds means DefaultSourceKinds.
func NewHandler(service *Service, kinds ...source.Kind) *Handler {
	if len(kinds) == 0 {
		kinds = DefaultSourceKinds
	}
	return &Handler{service: service, kinds: kinds}
}

// RegisterRoutes registers the run routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/runs")
	group.Post("/", h.HandleExecute)
	group.Get("/", h.HandleList)
	group.Post("/validate-rules", h.HandleLint)
	group.Get("/:id", h.HandleGet)
}

// HandleExecute runs a posted rule set.
// @Summary Execute Rule Set
// @Description Loads the sources of the posted rule set, runs reconciliation and validation, and returns the report. YAML bodies are accepted with a yaml content type.
// @Tags runs
// @Accept json
// @Produce json
// @Param ruleset body rules.RuleSet true "Rule set"
// @Success 200 {object} Execution "Run report"
// @Failure 400 {object} map[string]string "Invalid rule set"
// @Failure 403 {object} map[string]string "Source kind not allowed"
// @Failure 500 {object} map[string]string "Run failed"
// @Router /runs [post]
func (h *Handler) HandleExecute(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	set, err := parseBody(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := source.CheckKinds(set.Sources, h.kinds); err != nil {
		l.Warn("Rejected rule set", zap.Error(err))
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Executing rule set",
		zap.String("project", set.Project),
		zap.Int("reconciliation_rules", len(set.Reconciliation)),
		zap.Int("validation_rules", len(set.Validation)),
	)
	exec, err := h.service.Execute(c.Context(), set)
	if err != nil {
		l.Error("Run failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(exec)
}

// HandleLint checks a posted rule set without running it.
// @Summary Validate Rules
// @Description Parses the posted rule set and reports unknown check types, missing columns and malformed parameters.
// @Tags runs
// @Accept json
// @Produce json
// @Param ruleset body rules.RuleSet true "Rule set"
// @Success 200 {object} map[string]interface{} "Lint result"
// @Failure 400 {object} map[string]string "Invalid rule set"
// @Router /runs/validate-rules [post]
func (h *Handler) HandleLint(c *fiber.Ctx) error {
	set, err := parseBody(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	problems := rules.Lint(set)
	if problems == nil {
		problems = []rules.Problem{}
	}
	return c.JSON(fiber.Map{
		"valid":    len(problems) == 0,
		"problems": problems,
	})
}

// HandleList lists recent runs.
// @Summary List Runs
// @Description Lists recorded runs, most recent first.
// @Tags runs
// @Produce json
// @Param limit query int false "Maximum runs to return"
// @Success 200 {array} history.Run "Runs"
// @Failure 503 {object} map[string]string "History disabled"
// @Router /runs [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	store := h.service.History()
	if store == nil {
		return historyDisabled(c)
	}
	runs, err := store.List(c.Context(), c.QueryInt("limit", history.DefaultListLimit))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(runs)
}

// HandleGet returns one recorded run with its report.
// @Summary Get Run
// @Description Returns a recorded run, its findings and the full report.
// @Tags runs
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} map[string]interface{} "Run"
// @Failure 404 {object} map[string]string "Not found"
// @Failure 503 {object} map[string]string "History disabled"
// @Router /runs/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	store := h.service.History()
	if store == nil {
		return historyDisabled(c)
	}
	run, err := store.Get(c.Context(), c.Params("id"))
	if errors.Is(err, history.ErrRunNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	rep, err := run.Report()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"run": run, "report": rep})
}

func historyDisabled(c *fiber.Ctx) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "run history is not enabled"})
}

func parseBody(c *fiber.Ctx) (*rules.RuleSet, error) {
	format := rules.FormatJSON
	if strings.Contains(strings.ToLower(c.Get(fiber.HeaderContentType)), "yaml") {
		format = rules.FormatYAML
	}
	return rules.Parse(c.Body(), format)
}
