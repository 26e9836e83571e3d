// Package api exposes the client board over HTTP. It is thin plumbing:
// parse and validate request shape, delegate to the service, serialize the
// result or the discriminated error.
package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/example/laneboard/internal/core/lane"
	"github.com/example/laneboard/internal/ports/primary"
)

// Register wires up all API routes on the provided Echo instance.
func Register(e *echo.Echo, clients primary.ClientService, logger *log.Logger) {
	e.GET("/healthz", healthz())
	e.GET("/api/clients", getClients(clients))
	e.POST("/api/clients", postClient(clients, logger))
	e.GET("/api/clients/:id", getClient(clients))
	e.PUT("/api/clients/:id", putClient(clients, logger))
	e.DELETE("/api/clients/:id", deleteClient(clients, logger))
}

type clientsResponse struct {
	Clients []primary.Client `json:"clients"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// clientBody is the request body for POST and PUT. Nil fields were absent.
type clientBody struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *int    `json:"priority"`
}

func healthz() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
}

func getClients(clients primary.ClientService) echo.HandlerFunc {
	return func(c echo.Context) error {
		list, err := clients.ListClients(c.Request().Context())
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, clientsResponse{Clients: list})
	}
}

func getClient(clients primary.ClientService) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := parseID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid client id"})
		}
		client, err := clients.GetClient(c.Request().Context(), id)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, client)
	}
}

func postClient(clients primary.ClientService, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var body clientBody
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		}

		req := primary.CreateClientRequest{Priority: body.Priority}
		if body.Name != nil {
			req.Name = *body.Name
		}
		if body.Description != nil {
			req.Description = *body.Description
		}
		if body.Status != nil {
			req.Status = *body.Status
		}

		client, err := clients.CreateClient(c.Request().Context(), req)
		if err != nil {
			logger.WithError(err).Debug("create client rejected")
			return writeError(c, err)
		}
		return c.JSON(http.StatusCreated, client)
	}
}

// putClient edits fields and/or moves the client. Any status or priority in
// the body goes through the reorder engine; the response is always the full
// updated record set, so the caller can redraw the whole board.
func putClient(clients primary.ClientService, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := parseID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid client id"})
		}

		var body clientBody
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		}

		ctx := c.Request().Context()

		if body.Name != nil || body.Description != nil {
			if _, err := clients.UpdateClient(ctx, primary.UpdateClientRequest{
				ID:          id,
				Name:        body.Name,
				Description: body.Description,
			}); err != nil {
				logger.WithError(err).Debug("update client rejected")
				return writeError(c, err)
			}
		}

		if body.Status != nil || body.Priority != nil {
			list, err := clients.Reorder(ctx, primary.ReorderRequest{
				ID:       id,
				Status:   body.Status,
				Priority: body.Priority,
			})
			if err != nil {
				logger.WithError(err).Debug("reorder rejected")
				return writeError(c, err)
			}
			return c.JSON(http.StatusOK, clientsResponse{Clients: list})
		}

		list, err := clients.ListClients(ctx)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, clientsResponse{Clients: list})
	}
}

func deleteClient(clients primary.ClientService, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := parseID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid client id"})
		}
		list, err := clients.DeleteClient(c.Request().Context(), id)
		if err != nil {
			logger.WithError(err).Debug("delete client rejected")
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, clientsResponse{Clients: list})
	}
}

func parseID(c echo.Context) (int, error) {
	return strconv.Atoi(c.Param("id"))
}

// writeError maps a discriminated engine error to an HTTP status: validation
// kinds are 400, an empty-lane conflict is 409, store failures and anything
// undiscriminated are 500.
func writeError(c echo.Context, err error) error {
	kind, ok := lane.KindOf(err)
	if !ok {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}

	status := http.StatusInternalServerError
	switch kind {
	case lane.KindInvalidID, lane.KindInvalidStatus, lane.KindInvalidPriority, lane.KindInvalidName:
		status = http.StatusBadRequest
	case lane.KindEmptyLane:
		status = http.StatusConflict
	case lane.KindStoreFailed:
		status = http.StatusInternalServerError
	}

	return c.JSON(status, errorResponse{Error: err.Error(), Kind: string(kind)})
}
