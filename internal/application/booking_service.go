// Package application orchestrates the booking use cases: planning a trip,
// shaping its waypoints, quoting the fare, confirming, and working with the
// booking history.
package application

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/teksi-laju/service-booking/internal/domain"
	"github.com/teksi-laju/service-booking/internal/domain/booking"
	"github.com/teksi-laju/service-booking/internal/domain/taxi"
	"github.com/teksi-laju/service-booking/internal/events"
	"github.com/teksi-laju/service-booking/internal/geocode"
	"github.com/teksi-laju/service-booking/internal/geojson"
	"github.com/teksi-laju/service-booking/internal/repository"
)

const eventSource = "service-booking"

// PlanTripRequest holds the data needed to plan a new trip.
type PlanTripRequest struct {
	StartQuery  string    `json:"start" binding:"required"`
	EndQuery    string    `json:"end" binding:"required"`
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
}

// WaypointRole names which slot a map-click waypoint fills.
type WaypointRole string

const (
	RoleStart WaypointRole = "start"
	RoleEnd   WaypointRole = "end"
	RoleStop  WaypointRole = "stop"
)

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	BookingName     string             `json:"booking_name"`
	Locations       []booking.Location `json:"locations"`
	ScheduledAt     time.Time          `json:"scheduled_at"`
	TaxiType        string             `json:"taxi_type,omitempty"`
	Stops           int                `json:"stops"`
	TotalDistanceKm float64            `json:"total_distance_km"`
	TotalFare       float64            `json:"total_fare"`
	Currency        string             `json:"currency"`
}

// ConfirmResult is returned when a draft becomes a confirmed booking.
type ConfirmResult struct {
	Booking  BookingDTO `json:"booking"`
	TaxiRego string     `json:"taxi_rego"`
	Index    int        `json:"index"`
}

// HistoryItemDTO is one row of the history view. Index addresses the
// booking within the sorted list for the details handoff.
type HistoryItemDTO struct {
	Index           int       `json:"index"`
	BookingName     string    `json:"booking_name"`
	ScheduledAt     time.Time `json:"scheduled_at"`
	Stops           int       `json:"stops"`
	TotalDistanceKm float64   `json:"total_distance_km"`
	TotalFare       float64   `json:"total_fare"`
	PickupAddress   string    `json:"pickup_address"`
	DropoffAddress  string    `json:"dropoff_address"`
}

// HistoryDTO buckets the sorted booking list for display.
type HistoryDTO struct {
	Scheduled []HistoryItemDTO `json:"scheduled"`
	Current   []HistoryItemDTO `json:"current"`
	Past      []HistoryItemDTO `json:"past"`
}

// DetailsDTO is the details view of one confirmed booking.
type DetailsDTO struct {
	Index   int                       `json:"index"`
	Booking BookingDTO                `json:"booking"`
	Route   geojson.FeatureCollection `json:"route"`
}

// BookingService is the application service orchestrating the booking flow.
type BookingService struct {
	store     *repository.BookingStore
	geocoder  geocode.Geocoder
	registry  *taxi.Registry
	fares     booking.FareStrategy
	publisher events.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	store *repository.BookingStore,
	geocoder geocode.Geocoder,
	registry *taxi.Registry,
	fares booking.FareStrategy,
	publisher events.Publisher,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		store:     store,
		geocoder:  geocoder,
		registry:  registry,
		fares:     fares,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// PlanTrip validates the trip form, resolves both addresses and resets the
// draft's waypoints to the new pickup and drop-off. The two lookups are
// awaited one after the other, so a slow start lookup can never be
// misattributed to the drop-off.
func (s *BookingService) PlanTrip(ctx context.Context, req PlanTripRequest) (*BookingDTO, error) {
	if strings.TrimSpace(req.StartQuery) == "" {
		return nil, domain.NewValidationError("starting location must not be blank")
	}
	if strings.TrimSpace(req.EndQuery) == "" {
		return nil, domain.NewValidationError("destination must not be blank")
	}
	if req.ScheduledAt.IsZero() {
		return nil, domain.NewValidationError("a date and time must be selected")
	}
	now := s.now()
	if req.ScheduledAt.Before(now) {
		return nil, domain.NewValidationError("booking date must not be in the past")
	}

	start, err := s.geocoder.Geocode(ctx, req.StartQuery)
	if err != nil {
		return nil, err
	}
	end, err := s.geocoder.Geocode(ctx, req.EndQuery)
	if err != nil {
		return nil, err
	}

	draft, found, err := s.store.LoadDraft(ctx)
	if err != nil {
		return nil, err
	}
	if !found {
		draft = booking.NewBooking()
	}

	draft.RemoveAllLocations()
	draft.SetSchedule(req.ScheduledAt)
	draft.AddStartLocation(start)
	draft.AddEndLocation(end)

	if err := s.saveDraft(ctx, draft); err != nil {
		return nil, err
	}
	dto := s.toBookingDTO(draft)
	return &dto, nil
}

// AddStop resolves the query and inserts it as an intermediate waypoint,
// keeping the drop-off last.
func (s *BookingService) AddStop(ctx context.Context, query string) (*BookingDTO, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.NewValidationError("stop location must not be blank")
	}

	draft, err := s.requireDraft(ctx)
	if err != nil {
		return nil, err
	}

	stop, err := s.geocoder.Geocode(ctx, query)
	if err != nil {
		return nil, err
	}
	draft.AddStopLocation(stop)

	if err := s.saveDraft(ctx, draft); err != nil {
		return nil, err
	}
	dto := s.toBookingDTO(draft)
	return &dto, nil
}

// AddWaypoint adds a raw map-click coordinate in the given role.
func (s *BookingService) AddWaypoint(ctx context.Context, role WaypointRole, coord booking.Coordinate) (*BookingDTO, error) {
	draft, err := s.requireDraft(ctx)
	if err != nil {
		return nil, err
	}

	loc, err := booking.NewCoordinateLocation(coord)
	if err != nil {
		return nil, err
	}

	switch role {
	case RoleStart:
		draft.AddStartLocation(loc)
	case RoleEnd:
		draft.AddEndLocation(loc)
	case RoleStop:
		draft.AddStopLocation(loc)
	default:
		return nil, domain.NewValidationError("waypoint role must be start, end or stop")
	}

	if err := s.saveDraft(ctx, draft); err != nil {
		return nil, err
	}
	dto := s.toBookingDTO(draft)
	return &dto, nil
}

// ClearWaypoints empties the draft's waypoint sequence while keeping its
// schedule and taxi class.
func (s *BookingService) ClearWaypoints(ctx context.Context) (*BookingDTO, error) {
	draft, err := s.requireDraft(ctx)
	if err != nil {
		return nil, err
	}

	draft.RemoveAllLocations()

	if err := s.saveDraft(ctx, draft); err != nil {
		return nil, err
	}
	dto := s.toBookingDTO(draft)
	return &dto, nil
}

// RemoveWaypoint deletes the waypoint at index from the draft.
func (s *BookingService) RemoveWaypoint(ctx context.Context, index int) (*BookingDTO, error) {
	draft, err := s.requireDraft(ctx)
	if err != nil {
		return nil, err
	}

	if err := draft.RemoveLocation(index); err != nil {
		return nil, err
	}

	if err := s.saveDraft(ctx, draft); err != nil {
		return nil, err
	}
	dto := s.toBookingDTO(draft)
	return &dto, nil
}

// SelectTaxi sets the draft's taxi class and refreshes the quote.
func (s *BookingService) SelectTaxi(ctx context.Context, taxiType string) (*BookingDTO, error) {
	t, err := booking.ParseTaxiType(taxiType)
	if err != nil {
		return nil, err
	}

	draft, err := s.requireDraft(ctx)
	if err != nil {
		return nil, err
	}

	draft.SetTaxiType(t)

	if err := s.saveDraft(ctx, draft); err != nil {
		return nil, err
	}
	dto := s.toBookingDTO(draft)
	return &dto, nil
}

// Summary returns the draft as presented for review before confirmation.
func (s *BookingService) Summary(ctx context.Context) (*BookingDTO, error) {
	draft, err := s.requireDraft(ctx)
	if err != nil {
		return nil, err
	}
	dto := s.toBookingDTO(draft)
	return &dto, nil
}

// DraftRoute returns the map render document for the draft's waypoints.
func (s *BookingService) DraftRoute(ctx context.Context) (*geojson.FeatureCollection, error) {
	draft, err := s.requireDraft(ctx)
	if err != nil {
		return nil, err
	}
	doc := geojson.RouteDocument(draft.Locations())
	return &doc, nil
}

// Confirm commits the draft: a taxi of the selected class must be
// available, then the booking joins the persisted list, the details view is
// pointed at it and the draft is cleared. The list write is the commit
// point; if it fails, the draft is left untouched.
func (s *BookingService) Confirm(ctx context.Context) (*ConfirmResult, error) {
	draft, err := s.requireDraft(ctx)
	if err != nil {
		return nil, err
	}

	if draft.LocationCount() < booking.MinimumLocations {
		return nil, domain.NewValidationError("a booking needs at least a pickup and a drop-off")
	}
	if draft.TaxiType() == "" {
		return nil, domain.NewValidationError("a taxi type must be confirmed for the booking")
	}

	assigned, err := s.registry.Assign(draft.TaxiType())
	if err != nil {
		return nil, err
	}

	list, err := s.store.LoadList(ctx)
	if err != nil {
		return nil, err
	}

	list.Add(draft)
	if err := s.store.SaveList(ctx, list); err != nil {
		return nil, err
	}

	index := list.Len() - 1
	if err := s.store.SetSelectedIndex(ctx, index); err != nil {
		s.logger.Warn("failed to record selected booking index", zap.Error(err))
	}
	if err := s.store.ClearDraft(ctx); err != nil {
		s.logger.Warn("failed to clear draft after confirm", zap.Error(err))
	}

	s.publishBookingEvent(ctx, events.BookingConfirmed, draft, assigned.Rego)

	return &ConfirmResult{
		Booking:  s.toBookingDTO(draft),
		TaxiRego: assigned.Rego,
		Index:    index,
	}, nil
}

// CancelDraft abandons the in-progress booking.
func (s *BookingService) CancelDraft(ctx context.Context) error {
	return s.store.ClearDraft(ctx)
}

// History returns the confirmed bookings sorted latest first and bucketed
// into scheduled, current and past. The sorted order is persisted back, so
// history indexes stay valid for the details handoff.
func (s *BookingService) History(ctx context.Context) (*HistoryDTO, error) {
	list, err := s.store.LoadList(ctx)
	if err != nil {
		return nil, err
	}

	list.SortByDateDesc()
	if err := s.store.SaveList(ctx, list); err != nil {
		s.logger.Warn("failed to persist sorted booking list", zap.Error(err))
	}

	now := s.now()
	out := &HistoryDTO{
		Scheduled: []HistoryItemDTO{},
		Current:   []HistoryItemDTO{},
		Past:      []HistoryItemDTO{},
	}
	for i, b := range list.Bookings() {
		item := s.toHistoryItem(i, b)
		switch booking.ClassifyWindow(b.ScheduledAt(), now) {
		case booking.WindowScheduled:
			out.Scheduled = append(out.Scheduled, item)
		case booking.WindowCurrent:
			out.Current = append(out.Current, item)
		default:
			out.Past = append(out.Past, item)
		}
	}
	return out, nil
}

// Select points the details view at the booking at index.
func (s *BookingService) Select(ctx context.Context, index int) (*DetailsDTO, error) {
	list, err := s.store.LoadList(ctx)
	if err != nil {
		return nil, err
	}
	b, err := list.Get(index)
	if err != nil {
		return nil, err
	}
	if err := s.store.SetSelectedIndex(ctx, index); err != nil {
		return nil, err
	}
	return s.toDetailsDTO(index, b), nil
}

// Details returns the currently selected booking.
func (s *BookingService) Details(ctx context.Context) (*DetailsDTO, error) {
	_, index, b, err := s.selectedBooking(ctx)
	if err != nil {
		return nil, err
	}
	return s.toDetailsDTO(index, b), nil
}

// ChangeTaxi re-prices the selected booking with a new taxi class. Only
// bookings scheduled for a later calendar day may change class, and the new
// class must have an available unit.
func (s *BookingService) ChangeTaxi(ctx context.Context, taxiType string) (*DetailsDTO, error) {
	list, index, b, err := s.selectedBooking(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if !booking.IsAdvanceBooking(b.ScheduledAt(), now) {
		return nil, domain.NewValidationError("the taxi type cannot be changed once the booking day has arrived")
	}

	t, err := booking.ParseTaxiType(taxiType)
	if err != nil {
		return nil, err
	}
	assigned, err := s.registry.Assign(t)
	if err != nil {
		return nil, err
	}

	b.SetTaxiType(t)
	b.Recompute(s.fares, now)

	if err := s.store.SaveList(ctx, list); err != nil {
		return nil, err
	}

	s.publishBookingEvent(ctx, events.BookingTaxiChanged, b, assigned.Rego)

	return s.toDetailsDTO(index, b), nil
}

// CancelBooking removes the selected booking from the list. Only bookings
// scheduled for a later calendar day may be cancelled.
func (s *BookingService) CancelBooking(ctx context.Context) error {
	list, index, b, err := s.selectedBooking(ctx)
	if err != nil {
		return err
	}

	if !booking.IsAdvanceBooking(b.ScheduledAt(), s.now()) {
		return domain.NewValidationError("the booking cannot be cancelled once its day has arrived")
	}

	if err := list.Remove(index); err != nil {
		return err
	}
	if err := s.store.SaveList(ctx, list); err != nil {
		return err
	}
	if err := s.store.ClearSelectedIndex(ctx); err != nil {
		s.logger.Warn("failed to clear selected booking index", zap.Error(err))
	}

	s.publishBookingEvent(ctx, events.BookingCancelled, b, "")

	return nil
}

// Taxis returns the full fleet for display.
func (s *BookingService) Taxis() []taxi.Taxi {
	return s.registry.Fleet()
}

// --- Helpers ---

// requireDraft loads the draft or rejects the action when none exists.
func (s *BookingService) requireDraft(ctx context.Context) (*booking.Booking, error) {
	draft, found, err := s.store.LoadDraft(ctx)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.NewValidationError("no trip has been planned yet")
	}
	return draft, nil
}

// saveDraft refreshes the draft's derived fields and display name, then
// persists it.
func (s *BookingService) saveDraft(ctx context.Context, draft *booking.Booking) error {
	draft.Recompute(s.fares, s.now())
	if end, err := draft.EndLocation(); err == nil {
		draft.SetBookingName(end.Name)
	}
	return s.store.SaveDraft(ctx, draft)
}

// selectedBooking resolves the details-view handoff to a live booking.
func (s *BookingService) selectedBooking(ctx context.Context) (*booking.BookingList, int, *booking.Booking, error) {
	index, found, err := s.store.SelectedIndex(ctx)
	if err != nil {
		return nil, 0, nil, err
	}
	if !found {
		return nil, 0, nil, domain.NewNotFoundError("selected booking", "none")
	}
	list, err := s.store.LoadList(ctx)
	if err != nil {
		return nil, 0, nil, err
	}
	b, err := list.Get(index)
	if err != nil {
		return nil, 0, nil, err
	}
	return list, index, b, nil
}

func (s *BookingService) toBookingDTO(b *booking.Booking) BookingDTO {
	return BookingDTO{
		BookingName:     b.BookingName(),
		Locations:       b.Locations(),
		ScheduledAt:     b.ScheduledAt(),
		TaxiType:        b.TaxiType().String(),
		Stops:           b.Stops(),
		TotalDistanceKm: b.TotalDistanceKm(),
		TotalFare:       b.TotalFare(),
		Currency:        domain.CurrencyMYR,
	}
}

func (s *BookingService) toHistoryItem(index int, b *booking.Booking) HistoryItemDTO {
	item := HistoryItemDTO{
		Index:           index,
		BookingName:     b.BookingName(),
		ScheduledAt:     b.ScheduledAt(),
		Stops:           b.Stops(),
		TotalDistanceKm: b.TotalDistanceKm(),
		TotalFare:       b.TotalFare(),
	}
	if start, err := b.StartLocation(); err == nil {
		item.PickupAddress = start.Address
	}
	if end, err := b.EndLocation(); err == nil {
		item.DropoffAddress = end.Address
	}
	return item
}

func (s *BookingService) toDetailsDTO(index int, b *booking.Booking) *DetailsDTO {
	return &DetailsDTO{
		Index:   index,
		Booking: s.toBookingDTO(b),
		Route:   geojson.RouteDocument(b.Locations()),
	}
}

func (s *BookingService) publishBookingEvent(ctx context.Context, eventType string, b *booking.Booking, rego string) {
	evt, err := events.NewCloudEvent(eventSource, eventType, events.BookingEvent{
		BookingName: b.BookingName(),
		TaxiType:    b.TaxiType().String(),
		TaxiRego:    rego,
		TotalFare:   b.TotalFare(),
		Currency:    domain.CurrencyMYR,
		ScheduledAt: b.ScheduledAt(),
		OccurredAt:  time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.publisher.Publish(ctx, b.BookingName(), evt); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
