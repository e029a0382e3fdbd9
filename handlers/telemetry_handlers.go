package handlers

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"log"

	"cropadvisory/models"
	"cropadvisory/telemetry"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// HandleTelemetry returns the current readings and chart history.
// GET /api/v1/telemetry
func (h *Handler) HandleTelemetry(c *fiber.Ctx) error {
	return successJSON(c, h.Telemetry.Snapshot())
}

// HandleTelemetryStream pushes a snapshot after every simulator tick as
// server-sent events.
// GET /api/v1/telemetry/stream
func (h *Handler) HandleTelemetryStream(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	sim := h.Telemetry
	ch := sim.Subscribe()
	first := sim.Snapshot()

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer sim.Unsubscribe(ch)

		if err := writeEvent(w, first); err != nil {
			return
		}
		for snap := range ch {
			if err := writeEvent(w, snap); err != nil {
				log.Printf("[telemetry] stream client gone: %v", err)
				return
			}
		}
	}))
	return nil
}

func writeEvent(w *bufio.Writer, snap models.TelemetrySnapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "id: %d\nevent: telemetry\ndata: %s\n\n", snap.Tick, b); err != nil {
		return err
	}
	return w.Flush()
}

// HandleTelemetryChart renders the 24h conditions chart.
// GET /api/v1/telemetry/chart.png
func (h *Handler) HandleTelemetryChart(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := telemetry.RenderChart(&buf, h.Telemetry.Snapshot(), telemetry.ChartWidth, telemetry.ChartHeight); err != nil {
		log.Printf("[telemetry] chart failed: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to render chart")
	}
	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Send(buf.Bytes())
}

// HandleTelemetryExport downloads the chart history as a workbook.
// GET /api/v1/telemetry/export.xlsx
func (h *Handler) HandleTelemetryExport(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := telemetry.ExportWorkbook(&buf, h.Telemetry.Snapshot()); err != nil {
		log.Printf("[telemetry] export failed: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to export telemetry")
	}
	c.Set(fiber.HeaderContentType, xlsxMIME)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="telemetry.xlsx"`)
	return c.Send(buf.Bytes())
}
