package httpServices

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"pod-tracker/logger"
	trip_model "pod-tracker/models/trip"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CRMClient struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(baseURL string) *CRMClient {
	return &CRMClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
	}
}

// FetchTripFeed pulls the current unloaded-trip feed from the CRM.
func (c *CRMClient) FetchTripFeed() ([]TripFeedItem, error) {
	httpReq, err := http.NewRequest("GET", c.baseURL+"/crm/trip-feed/", nil)
	if err != nil {
		return nil, err
	}

	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("CRM API returned non-OK status: " + resp.Status)
	}

	var apiResp TripFeedResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, err
	}

	if apiResp.Status != "success" {
		return nil, fmt.Errorf("CRM trip feed failed with status %q", apiResp.Status)
	}

	return apiResp.Trips, nil
}

// SyncTrips upserts feed items into the trip table. New trips start at
// vehicle_unloaded; existing trips only get their feed-owned fields
// refreshed, never their workflow state.
func (c *CRMClient) SyncTrips(db *gorm.DB) (int, error) {
	items, err := c.FetchTripFeed()
	if err != nil {
		return 0, err
	}

	count := 0
	err = db.Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			if item.TripID == "" || item.VehicleNo == "" {
				logger.Warning(fmt.Sprintf("Skipping malformed feed item: %+v", item))
				continue
			}

			unloadedAt := time.Now()
			if item.UnloadedAt != "" {
				if parsed, perr := time.Parse(time.RFC3339, item.UnloadedAt); perr == nil {
					unloadedAt = parsed
				}
			}

			priority := trip_model.Priority(item.Priority)
			if !priority.IsValid() {
				priority = trip_model.PriorityMedium
			}

			t := trip_model.Trip{
				ID:              item.TripID,
				VehicleNo:       item.VehicleNo,
				Status:          trip_model.StatusVehicleUnloaded,
				Priority:        priority,
				Origin:          item.Origin,
				Destination:     item.Destination,
				Route:           item.Route,
				DNode:           item.DNode,
				FOName:          item.FOName,
				FOPhone:         item.FOPhone,
				SupplyPOCName:   item.SupplyPOCName,
				SupplyPOCPhone:  item.SupplyPOCPhone,
				DemandPOCName:   item.DemandPOCName,
				DemandPOCPhone:  item.DemandPOCPhone,
				DriverName:      item.DriverName,
				DriverPhone:     item.DriverPhone,
				Supplier:        item.Supplier,
				SupplierAddress: item.SupplierAddr,
				UnloadedAt:      unloadedAt,
			}

			// Status, assignments and POD fields stay untouched on conflict.
			result := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"vehicle_no", "origin", "destination", "route", "d_node",
					"fo_name", "fo_phone", "supply_poc_name", "supply_poc_phone",
					"demand_poc_name", "demand_poc_phone", "driver_name",
					"driver_phone", "supplier",
				}),
			}).Create(&t)
			if result.Error != nil {
				return result.Error
			}
			count++
		}
		return nil
	})

	if err != nil {
		return 0, err
	}

	logger.Success(fmt.Sprintf("CRM sync upserted %d trips", count))
	return count, nil
}
