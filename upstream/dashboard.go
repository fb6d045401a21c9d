package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"auxin/models"
)

// MyProjects lists the caller's projects.
func (c *Client) MyProjects(ctx context.Context, token string) ([]models.Project, error) {
	var out []models.Project
	if err := c.do(ctx, http.MethodGet, "/api/projects/my-projects", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ProjectTasks lists a project's tasks.
func (c *Client) ProjectTasks(ctx context.Context, token, projectID string) ([]models.Task, error) {
	var out []models.Task
	path := "/api/projects/" + url.PathEscape(projectID) + "/tasks"
	if err := c.do(ctx, http.MethodGet, path, token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Notifications lists the caller's notifications, newest first. A limit of 0
// means no limit parameter is sent.
func (c *Client) Notifications(ctx context.Context, token string, limit int) ([]models.Notification, error) {
	path := "/api/notifications"
	if limit > 0 {
		path = fmt.Sprintf("%s?limit=%d", path, limit)
	}
	var out []models.Notification
	if err := c.do(ctx, http.MethodGet, path, token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkNotificationRead marks a single notification read.
func (c *Client) MarkNotificationRead(ctx context.Context, token, notificationID string) error {
	path := "/api/notifications/" + url.PathEscape(notificationID) + "/read"
	return c.do(ctx, http.MethodPatch, path, token, nil, nil)
}

// MarkAllNotificationsRead marks every notification read.
func (c *Client) MarkAllNotificationsRead(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPatch, "/api/notifications/read-all", token, nil, nil)
}

// BillingInfo fetches the caller's billing profile.
func (c *Client) BillingInfo(ctx context.Context, token string) (*models.BillingInfo, error) {
	var out models.BillingInfo
	if err := c.do(ctx, http.MethodGet, "/api/admin/clients/user/billing-info", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateBillingInfo patches the caller's billing profile.
func (c *Client) UpdateBillingInfo(ctx context.Context, token string, info models.BillingInfo) (*models.BillingInfo, error) {
	var out models.BillingInfo
	if err := c.do(ctx, http.MethodPatch, "/api/admin/clients/user/billing-info", token, info, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MyInvoices lists the caller's invoices.
func (c *Client) MyInvoices(ctx context.Context, token string) ([]models.Invoice, error) {
	var out []models.Invoice
	if err := c.do(ctx, http.MethodGet, "/api/invoices/my-invoices", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
