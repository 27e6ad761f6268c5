package seeders

import (
	"time"

	"pod-tracker/logger"
	trip_model "pod-tracker/models/trip"
	"pod-tracker/utils"

	"gorm.io/gorm"
)

// SeedTrips creates a handful of trips across the workflow states so
// every dashboard view has something to show.
func SeedTrips(db *gorm.DB) error {
	var count int64
	if err := db.Model(&trip_model.Trip{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Debug("Trips already seeded, skipping")
		return nil
	}

	now := time.Now()
	courierDate := now.AddDate(0, 0, -1)

	trips := []trip_model.Trip{
		{
			ID:              "TRP-1001",
			VehicleNo:       "KA01AB1234",
			Status:          trip_model.StatusVehicleUnloaded,
			SlotStatus:      trip_model.SlotOnsite,
			Priority:        trip_model.PriorityHigh,
			Origin:          "Bangalore",
			Destination:     "Chennai",
			Route:           "Bangalore - Chennai",
			DNode:           "BLR-D1",
			FOName:          "Ramesh Transport",
			FOPhone:         "+919876500001",
			SupplyPOCName:   "Suresh Kumar",
			SupplyPOCPhone:  "+919876500002",
			DemandPOCName:   "Mahesh Rao",
			DemandPOCPhone:  "+919876500003",
			DriverName:      "Shankar",
			DriverPhone:     "+919876500004",
			Supplier:        "Apollo Mills",
			SupplierAddress: "12/4 Industrial Area, Phase 2, Bangalore",
			UnloadedAt:      now.AddDate(0, 0, -1),
		},
		{
			ID:              "TRP-1002",
			VehicleNo:       "TN09XY7777",
			Status:          trip_model.StatusInProgress,
			SlotStatus:      trip_model.SlotIntransit,
			Priority:        trip_model.PriorityMedium,
			Origin:          "Chennai",
			Destination:     "Hyderabad",
			Route:           "Chennai - Hyderabad",
			DNode:           "MAA-D2",
			FOName:          "Venkat Logistics",
			FOPhone:         "+919876500011",
			SupplyPOCName:   "Anil Reddy",
			SupplyPOCPhone:  "+919876500012",
			DriverName:      "Murugan",
			DriverPhone:     "+919876500014",
			Supplier:        "Sree Textiles",
			SupplierAddress: "Plot 88, Ambattur Estate, Chennai",
			Runner:          strptr("Lokesh"),
			RunnerID:        strptr("RUN-01"),
			UnloadedAt:      now.AddDate(0, 0, -3),
		},
		{
			ID:              "TRP-1003",
			VehicleNo:       "MH12QQ0001",
			Status:          trip_model.StatusCouriered,
			SlotStatus:      trip_model.SlotRecovered,
			Priority:        trip_model.PriorityLow,
			Origin:          "Pune",
			Destination:     "Mumbai",
			Route:           "Pune - Mumbai",
			DNode:           "PNQ-D1",
			FOName:          "Shakti Carriers",
			FOPhone:         "+919876500021",
			SupplyPOCName:   "Prakash Joshi",
			SupplyPOCPhone:  "+919876500022",
			DriverName:      "Vitthal",
			DriverPhone:     "+919876500024",
			Supplier:        "Deccan Polymers",
			SupplierAddress: "MIDC Block C, Pune",
			Runner:          strptr("Lokesh"),
			RunnerID:        strptr("RUN-01"),
			Owner:           strptr("Arjun"),
			CourierPartner:  strptr("BlueDart"),
			AWBNumber:       strptr("AWB-778812"),
			CourierDate:     &courierDate,
			CollectedFrom:   strptr("Supplier gate"),
			PODImages:       trip_model.StringSlice{"trp-1003-pod-1.jpg", "trp-1003-pod-2.jpg"},
			UnloadedAt:      now.AddDate(0, 0, -6),
		},
		{
			ID:              "TRP-1004",
			VehicleNo:       "GJ05LM4321",
			Status:          trip_model.StatusDelivered,
			SlotStatus:      trip_model.SlotRecovered,
			Priority:        trip_model.PriorityMedium,
			Origin:          "Ahmedabad",
			Destination:     "Surat",
			Route:           "Ahmedabad - Surat",
			DNode:           "AMD-D3",
			FOName:          "Patel Roadlines",
			FOPhone:         "+919876500031",
			SupplyPOCName:   "Kiran Patel",
			SupplyPOCPhone:  "+919876500032",
			DriverName:      "Bharat",
			DriverPhone:     "+919876500034",
			Supplier:        "Narmada Chemicals",
			SupplierAddress: "GIDC Phase 1, Ahmedabad",
			Runner:          strptr("Lokesh"),
			RunnerID:        strptr("RUN-01"),
			Owner:           strptr("Arjun"),
			PODImages:       trip_model.StringSlice{"trp-1004-pod-1.jpg"},
			UnloadedAt:      now.AddDate(0, 0, -10),
		},
	}

	for i := range trips {
		trips[i].Aging = utils.AgingDays(trips[i].UnloadedAt, now)
	}

	if err := db.Create(&trips).Error; err != nil {
		return err
	}

	logger.Success("Seeded demo trips")
	return nil
}
