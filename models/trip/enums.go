package trip

// TripStatus is the delivery workflow state of a trip.
type TripStatus string

const (
	StatusVehicleUnloaded TripStatus = "vehicle_unloaded"
	StatusAssigned        TripStatus = "assigned"
	StatusInProgress      TripStatus = "in_progress"
	StatusPODCollected    TripStatus = "pod_collected"
	StatusCouriered       TripStatus = "couriered"
	StatusDelivered       TripStatus = "delivered"
	StatusFOCourier       TripStatus = "fo_courier"
)

func (ts TripStatus) String() string {
	return string(ts)
}

func (ts TripStatus) IsValid() bool {
	switch ts {
	case StatusVehicleUnloaded, StatusAssigned, StatusInProgress, StatusPODCollected, StatusCouriered, StatusDelivered, StatusFOCourier:
		return true
	default:
		return false
	}
}

// Label returns the display label used across every view. There is exactly
// one status-to-label table; components must not carry their own copies.
func (ts TripStatus) Label() string {
	switch ts {
	case StatusVehicleUnloaded:
		return "Vehicle Unloaded"
	case StatusAssigned:
		return "Assigned"
	case StatusInProgress:
		return "In Progress"
	case StatusPODCollected:
		return "POD Collected"
	case StatusCouriered:
		return "Couriered"
	case StatusDelivered:
		return "Delivered"
	case StatusFOCourier:
		return "FO Courier"
	default:
		return string(ts)
	}
}

// Next returns the nominal forward status, or "" for terminal states.
// fo_courier is an alternate entry that joins the chain at delivered.
func (ts TripStatus) Next() TripStatus {
	switch ts {
	case StatusVehicleUnloaded:
		return StatusAssigned
	case StatusAssigned:
		return StatusInProgress
	case StatusInProgress:
		return StatusPODCollected
	case StatusPODCollected:
		return StatusCouriered
	case StatusCouriered:
		return StatusDelivered
	case StatusFOCourier:
		return StatusDelivered
	default:
		return ""
	}
}

// IsTerminal returns true once no forward transition remains.
func (ts TripStatus) IsTerminal() bool {
	return ts == StatusDelivered
}

// GetAllTripStatuses returns all valid trip statuses
func GetAllTripStatuses() []TripStatus {
	return []TripStatus{
		StatusVehicleUnloaded,
		StatusAssigned,
		StatusInProgress,
		StatusPODCollected,
		StatusCouriered,
		StatusDelivered,
		StatusFOCourier,
	}
}

// SlotStatus classifies document recovery, independent of the trip workflow.
// Changing one never forces a change of the other.
type SlotStatus string

const (
	SlotRecovered           SlotStatus = "recovered"
	SlotOnsite              SlotStatus = "onsite"
	SlotRecovered25Plus     SlotStatus = "recovered_25_plus"
	SlotOnsiteEPODPending   SlotStatus = "onsite_epod_pending"
	SlotLostIBondSubmitted  SlotStatus = "lost_ibond_submitted"
	SlotLostIBondNotNeeded  SlotStatus = "lost_ibond_not_required"
	SlotLost                SlotStatus = "lost"
	SlotCritical            SlotStatus = "critical"
	SlotBelow15DaysPending  SlotStatus = "below_15_days_pending"
	SlotBelow5DaysPending   SlotStatus = "below_5_days_pending"
	SlotIntransit           SlotStatus = "intransit"
	SlotCancelled           SlotStatus = "cancelled"
)

func (ss SlotStatus) String() string {
	return string(ss)
}

func (ss SlotStatus) IsValid() bool {
	switch ss {
	case SlotRecovered, SlotOnsite, SlotRecovered25Plus, SlotOnsiteEPODPending,
		SlotLostIBondSubmitted, SlotLostIBondNotNeeded, SlotLost, SlotCritical,
		SlotBelow15DaysPending, SlotBelow5DaysPending, SlotIntransit, SlotCancelled:
		return true
	default:
		return false
	}
}

func (ss SlotStatus) Label() string {
	switch ss {
	case SlotRecovered:
		return "Recovered"
	case SlotOnsite:
		return "Onsite"
	case SlotRecovered25Plus:
		return "Recovered >25"
	case SlotOnsiteEPODPending:
		return "Onsite - EPOD Pending"
	case SlotLostIBondSubmitted:
		return "Lost - IBond Submitted"
	case SlotLostIBondNotNeeded:
		return "Lost - IBond Not Required"
	case SlotLost:
		return "Lost"
	case SlotCritical:
		return "Critical"
	case SlotBelow15DaysPending:
		return "Below 15 Days Pending"
	case SlotBelow5DaysPending:
		return "Below 5 Days Pending"
	case SlotIntransit:
		return "Intransit"
	case SlotCancelled:
		return "Cancelled"
	default:
		return string(ss)
	}
}

// Priority ranks a trip for runner attention.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) String() string {
	return string(p)
}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}
