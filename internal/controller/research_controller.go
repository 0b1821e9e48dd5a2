package controller

import (
	"errors"

	"research-assistant-be/internal/dto"
	"research-assistant-be/internal/pkg/serverutils"
	"research-assistant-be/internal/service"
	"research-assistant-be/pkg/assistant/pipeline"

	"github.com/gofiber/fiber/v2"
)

type IResearchController interface {
	RegisterRoutes(r fiber.Router)
	Run(ctx *fiber.Ctx) error
	ListRuns(ctx *fiber.Ctx) error
}

type researchController struct {
	researchService service.IResearchService
}

func NewResearchController(researchService service.IResearchService) IResearchController {
	return &researchController{
		researchService: researchService,
	}
}

func (c *researchController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/research/v1")
	h.Post("run", c.Run)
	h.Get("runs", c.ListRuns)
}

func (c *researchController) Run(ctx *fiber.Ctx) error {
	var req dto.RunResearchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.researchService.Run(ctx.Context(), &req)
	if err != nil {
		var planErr *pipeline.PlanValidationError
		if errors.As(err, &planErr) {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "Planner produced an invalid plan: "+planErr.Reason)
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success run research", res))
}

func (c *researchController) ListRuns(ctx *fiber.Ctx) error {
	res, err := c.researchService.ListRuns(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get research runs", res))
}
