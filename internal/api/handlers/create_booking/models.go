package create_booking

import (
	"github.com/m04kA/SMC-RangeBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-RangeBooking/internal/usecase/create_booking"
)

// SlotRef адрес слота в теле запроса
type SlotRef struct {
	TargetID string `json:"targetId"`
	SlotID   string `json:"slotId"`
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Slots       []SlotRef `json:"slots"`
	BookerName  string    `json:"bookerName,omitempty"`
	BookerClass string    `json:"bookerClass,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(competitionID int64, actor *domain.Actor) *createBooking.Request {
	slots := make([]createBooking.SlotRef, 0, len(r.Slots))
	for _, s := range r.Slots {
		slots = append(slots, createBooking.SlotRef{TargetID: s.TargetID, SlotID: s.SlotID})
	}
	return &createBooking.Request{
		CompetitionID: competitionID,
		Actor:         actor,
		Slots:         slots,
		BookerName:    r.BookerName,
		BookerClass:   domain.Class(r.BookerClass),
	}
}

// BookedSlotResponse забронированный слот
type BookedSlotResponse struct {
	TargetID    string `json:"targetId"`
	SlotID      string `json:"slotId"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	BookerName  string `json:"bookerName"`
	BookerClass string `json:"bookerClass"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	CompetitionID int64                `json:"competitionId"`
	Slots         []BookedSlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	result := &CreateBookingResponse{
		CompetitionID: resp.CompetitionID,
		Slots:         make([]BookedSlotResponse, 0, len(resp.Slots)),
	}
	for _, s := range resp.Slots {
		result.Slots = append(result.Slots, BookedSlotResponse{
			TargetID:    s.TargetID,
			SlotID:      s.SlotID,
			Date:        s.Date.Format(domain.DateFormat),
			Time:        s.Time.String(),
			BookerName:  s.BookerName,
			BookerClass: string(s.BookerClass),
		})
	}
	return result
}

// RejectedResponse тело ответа при отклоненном бронировании
type RejectedResponse struct {
	Code        int       `json:"code"`
	Message     string    `json:"message"`
	FailedSlots []SlotRef `json:"failedSlots,omitempty"`
}

func newRejectedResponse(code int, message string, keys []domain.SlotKey) RejectedResponse {
	resp := RejectedResponse{Code: code, Message: message}
	for _, k := range keys {
		resp.FailedSlots = append(resp.FailedSlots, SlotRef{TargetID: k.TargetID, SlotID: k.SlotID})
	}
	return resp
}
