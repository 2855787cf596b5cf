package api

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/aura/internal/models"
	"github.com/terraincognita07/aura/internal/services"
)

const commitActionSave = "save"

type checkinSymptomsInput struct {
	Symptoms []string `json:"symptoms" form:"symptoms"`
	Notes    string   `json:"notes" form:"notes"`
}

// StartCheckin opens a fresh wizard session from the Today Hub.
func (handler *Handler) StartCheckin(c *fiber.Ctx) error {
	store, ok := currentStore(c)
	if !ok {
		return apiError(c, fiber.StatusInternalServerError, "storage unavailable")
	}

	now := handler.currentTime()
	stamped := handler.dashboardService.StartCheckin(store, now)
	session := handler.checkinService.StartSession(now)
	if err := handler.saveCheckinSession(c, session); err != nil {
		log.Printf("save check-in session: %v", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to save check-in session")
	}

	if wantsJSON(c) {
		return c.JSON(fiber.Map{"ok": true, "session": session, "stamped": stamped})
	}
	handler.setFlash(c, FlashPayload{Toast: "flash.checkin_started"})
	return redirectOrJSON(c, "/checkin")
}

func (handler *Handler) ShowCheckin(c *fiber.Ctx) error {
	session, ok := handler.loadCheckinSession(c)
	if !ok {
		session = handler.checkinService.StartSession(handler.currentTime())
		if err := handler.saveCheckinSession(c, session); err != nil {
			log.Printf("save check-in session: %v", err)
		}
	}
	return handler.render(c, "checkin", buildCheckinPageData(currentMessages(c), session))
}

func (handler *Handler) GetCheckinSession(c *fiber.Ctx) error {
	session, ok := handler.loadCheckinSession(c)
	if !ok {
		return apiError(c, fiber.StatusNotFound, "no check-in in progress")
	}
	return c.JSON(checkinSessionState(session))
}

// ToggleCheckinSymptom flips one symptom on the first step.
func (handler *Handler) ToggleCheckinSymptom(c *fiber.Ctx) error {
	key := c.Params("key")
	if !models.IsValidSymptomKey(key) {
		return apiError(c, fiber.StatusBadRequest, "invalid symptom")
	}
	return handler.updateCheckinSession(c, func(session *services.WizardSession) {
		session.ToggleSymptom(key)
	})
}

// SubmitCheckinSymptoms applies the first step form and tries to advance.
// A blocked advance leaves the wizard on the first step without an error.
func (handler *Handler) SubmitCheckinSymptoms(c *fiber.Ctx) error {
	input := checkinSymptomsInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid symptom")
	}

	selected := make(map[string]bool, len(input.Symptoms))
	for _, key := range input.Symptoms {
		if !models.IsValidSymptomKey(key) {
			return apiError(c, fiber.StatusBadRequest, "invalid symptom")
		}
		selected[key] = true
	}

	return handler.updateCheckinSession(c, func(session *services.WizardSession) {
		for _, key := range models.SymptomKeys {
			if session.Symptoms[key] != selected[key] {
				session.ToggleSymptom(key)
			}
		}
		session.SetNotes(input.Notes)
		session.AdvanceFromSymptoms()
	})
}

func (handler *Handler) NextCheckinQuadrant(c *fiber.Ctx) error {
	return handler.updateCheckinSession(c, func(session *services.WizardSession) {
		session.NextQuadrant()
	})
}

// CommitCheckin backs both summary actions. Repeated calls for one session
// persist a single record. "save" keeps the session so the summary stays on
// screen; any other action ends it and returns to the hub.
func (handler *Handler) CommitCheckin(c *fiber.Ctx) error {
	store, ok := currentStore(c)
	if !ok {
		return apiError(c, fiber.StatusInternalServerError, "storage unavailable")
	}
	session, ok := handler.loadCheckinSession(c)
	if !ok {
		return apiError(c, fiber.StatusNotFound, "no check-in in progress")
	}

	record, committedNow, err := handler.checkinService.Commit(store, &session, handler.currentTime())
	if err != nil {
		return apiError(c, fiber.StatusConflict, err.Error())
	}
	stayOnSummary := strings.TrimSpace(c.FormValue("action")) == commitActionSave
	if stayOnSummary {
		if err := handler.saveCheckinSession(c, session); err != nil {
			log.Printf("save check-in session: %v", err)
		}
	} else {
		handler.clearCheckinSession(c)
	}

	if wantsJSON(c) {
		status := fiber.StatusOK
		if committedNow {
			status = fiber.StatusCreated
		}
		return c.Status(status).JSON(fiber.Map{"ok": true, "committed": committedNow, "record": record})
	}
	if committedNow {
		handler.setFlash(c, FlashPayload{Toast: "flash.checkin_saved"})
	}
	if stayOnSummary {
		return redirectOrJSON(c, "/checkin")
	}
	return redirectOrJSON(c, "/")
}

func (handler *Handler) GetCheckins(c *fiber.Ctx) error {
	store, ok := currentStore(c)
	if !ok {
		return apiError(c, fiber.StatusInternalServerError, "storage unavailable")
	}
	return c.JSON(handler.checkinService.History(store))
}

func (handler *Handler) updateCheckinSession(c *fiber.Ctx, apply func(session *services.WizardSession)) error {
	session, ok := handler.loadCheckinSession(c)
	if !ok {
		return apiError(c, fiber.StatusNotFound, "no check-in in progress")
	}

	apply(&session)
	if err := handler.saveCheckinSession(c, session); err != nil {
		log.Printf("save check-in session: %v", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to save check-in session")
	}

	if wantsJSON(c) {
		return c.JSON(checkinSessionState(session))
	}
	return redirectOrJSON(c, "/checkin")
}

func checkinSessionState(session services.WizardSession) fiber.Map {
	quadrant := session.CurrentQuadrant()
	return fiber.Map{
		"id":                session.ID,
		"step":              int(session.Step),
		"symptoms":          session.Symptoms,
		"notes":             session.Notes,
		"can_advance":       session.CanAdvanceFromSymptoms(),
		"quadrant":          session.QuadrantIndex,
		"quadrant_key":      quadrant.Key,
		"result":            session.Result(),
		"selected_symptoms": session.SelectedSymptoms(),
	}
}

func buildCheckinPageData(messages map[string]string, session services.WizardSession) fiber.Map {
	symptoms := make([]symptomOption, 0, len(models.SymptomKeys))
	for _, key := range models.SymptomKeys {
		symptoms = append(symptoms, symptomOption{Key: key, Selected: session.Symptoms[key]})
	}

	selected := session.SelectedSymptoms()
	selectedLabels := make([]string, 0, len(selected))
	for _, key := range selected {
		selectedLabels = append(selectedLabels, symptomLabel(messages, key))
	}

	return fiber.Map{
		"Title":            localizedPageTitle(messages, "meta.title.checkin", "Aura | Monthly check-in"),
		"Step":             int(session.Step),
		"StepCount":        services.WizardStepCount,
		"Symptoms":         symptoms,
		"Notes":            session.Notes,
		"CanAdvance":       session.CanAdvanceFromSymptoms(),
		"Quadrants":        services.ScanQuadrants,
		"QuadrantIndex":    session.QuadrantIndex,
		"Quadrant":         session.CurrentQuadrant(),
		"IsLastQuadrant":   session.IsLastQuadrant(),
		"Result":           session.Result(),
		"SelectedSymptoms": selectedLabels,
		"TrimmedNotes":     session.TrimmedNotes(),
	}
}
