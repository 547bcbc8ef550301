package booking

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	domain "github.com/nallenclassics/barber-booking/internal/domain/booking"
	"github.com/nallenclassics/barber-booking/internal/httperr"
	"github.com/nallenclassics/barber-booking/internal/payhere"
)

var testHours = domain.Hours{
	OpenHour:    10,
	CloseHour:   21,
	SlotMinutes: 15,
}

// slotAt is a valid 10:00 UTC slot start far in the future.
func slotAt(hour, minute int) time.Time {
	return time.Date(2030, 6, 10, hour, minute, 0, 0, time.UTC)
}

func newInitiate(repo domain.Repository, gw *payhere.Gateway) *InitiateBooking {
	if gw == nil {
		gw = &payhere.Gateway{}
	}
	return NewInitiateBooking(repo, domain.NewLockTable(), gw, nil, testHours, 0, 500, "LKR")
}

func TestInitiateRejectsOffGridStart(t *testing.T) {
	repo := newFakeRepo()
	repo.addBarber(1, "Kasun")
	repo.addService(1, "Haircut", 15)

	uc := newInitiate(repo, nil)
	_, err := uc.Execute(context.Background(), InitiateInput{
		BarberID:  1,
		ServiceID: 1,
		StartTime: slotAt(10, 7),
	})
	if !httperr.IsBusiness(err, "invalid_slot") {
		t.Fatalf("want invalid_slot, got %v", err)
	}

	_, err = uc.Execute(context.Background(), InitiateInput{
		BarberID:  1,
		ServiceID: 1,
		StartTime: slotAt(9, 45),
	})
	if !httperr.IsBusiness(err, "invalid_slot") {
		t.Fatalf("before opening: want invalid_slot, got %v", err)
	}

	if repo.appointmentCount() != 0 || len(repo.payments) != 0 {
		t.Fatal("rejected request left state behind")
	}
}

func TestInitiateRejectsPastStart(t *testing.T) {
	repo := newFakeRepo()
	repo.addBarber(1, "Kasun")
	repo.addService(1, "Haircut", 15)

	uc := newInitiate(repo, nil)
	_, err := uc.Execute(context.Background(), InitiateInput{
		BarberID:  1,
		ServiceID: 1,
		StartTime: time.Date(2020, 6, 10, 10, 0, 0, 0, time.UTC),
	})
	if !httperr.IsBusiness(err, "slot_in_past") {
		t.Fatalf("want slot_in_past, got %v", err)
	}
}

func TestInitiateRejectsUnknownBarberAndService(t *testing.T) {
	repo := newFakeRepo()
	repo.addBarber(1, "Kasun")
	repo.addService(1, "Haircut", 15)

	uc := newInitiate(repo, nil)

	_, err := uc.Execute(context.Background(), InitiateInput{
		BarberID:  99,
		ServiceID: 1,
		StartTime: slotAt(10, 0),
	})
	if !httperr.IsBusiness(err, "invalid_barber") {
		t.Fatalf("want invalid_barber, got %v", err)
	}

	_, err = uc.Execute(context.Background(), InitiateInput{
		BarberID:  1,
		ServiceID: 99,
		StartTime: slotAt(10, 0),
	})
	if !httperr.IsBusiness(err, "invalid_service") {
		t.Fatalf("want invalid_service, got %v", err)
	}
}

func TestInitiateRejectsOverlap(t *testing.T) {
	repo := newFakeRepo()
	repo.addBarber(1, "Kasun")
	repo.addService(1, "Shave", 30)

	// 10:15-10:45 is already taken; a 30-minute service at 10:00 collides.
	if err := repo.ReserveAppointment(context.Background(), seedAppointment(1, slotAt(10, 15), 30)); err != nil {
		t.Fatal(err)
	}

	uc := newInitiate(repo, nil)
	_, err := uc.Execute(context.Background(), InitiateInput{
		BarberID:  1,
		ServiceID: 1,
		StartTime: slotAt(10, 0),
	})
	if !httperr.IsBusiness(err, "slot_taken") {
		t.Fatalf("want slot_taken, got %v", err)
	}
	if len(repo.payments) != 0 {
		t.Fatal("conflicting request created a payment intent")
	}

	// Back-to-back is fine: 9:45 would end exactly at 10:15... but 9:45 is
	// outside hours, so book 10:45 instead, touching the busy end.
	res, err := uc.Execute(context.Background(), InitiateInput{
		CustomerName:  "Nimal",
		CustomerPhone: "0771234567",
		BarberID:      1,
		ServiceID:     1,
		StartTime:     slotAt(10, 45),
	})
	if err != nil {
		t.Fatalf("touching slot rejected: %v", err)
	}
	if res.PaymentRequired {
		t.Fatal("no gateway configured, expected synchronous confirmation")
	}
}

func TestInitiateNoGatewayConfirmsSynchronously(t *testing.T) {
	repo := newFakeRepo()
	repo.addBarber(1, "Kasun")
	repo.addService(1, "Haircut", 45)

	uc := newInitiate(repo, nil)
	res, err := uc.Execute(context.Background(), InitiateInput{
		CustomerName:  "Nimal",
		CustomerPhone: "0771234567",
		BarberID:      1,
		ServiceID:     1,
		StartTime:     slotAt(11, 0),
		Notes:         "beard trim too",
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.PaymentRequired {
		t.Fatal("expected payment_required=false")
	}
	if res.AppointmentID == 0 {
		t.Fatal("expected a confirmed appointment id")
	}
	if !strings.HasPrefix(res.OrderID, "BK-") {
		t.Fatalf("order id %q", res.OrderID)
	}

	ap, err := repo.GetAppointment(context.Background(), res.AppointmentID)
	if err != nil {
		t.Fatal(err)
	}
	if want := slotAt(11, 45); !ap.EndTime.Equal(want) {
		t.Fatalf("end = %v, want %v", ap.EndTime, want)
	}

	p, err := repo.GetPaymentByOrderID(context.Background(), res.OrderID)
	if err != nil {
		t.Fatal(err)
	}
	if p.Status != "paid" {
		t.Fatalf("payment status = %q, want paid", p.Status)
	}
	if p.AppointmentID == nil || *p.AppointmentID != res.AppointmentID {
		t.Fatal("payment not linked to the appointment")
	}
}

func TestInitiateGatewayReturnsCheckout(t *testing.T) {
	repo := newFakeRepo()
	repo.addBarber(1, "Kasun")
	repo.addService(1, "Haircut", 15)

	gw := &payhere.Gateway{
		MerchantID:     "121XXXX",
		MerchantSecret: "testsecret",
		Sandbox:        true,
		BaseURL:        "http://localhost:3000",
	}
	uc := newInitiate(repo, gw)

	res, err := uc.Execute(context.Background(), InitiateInput{
		CustomerName:  "Nimal Perera",
		CustomerPhone: "0771234567",
		BarberID:      1,
		ServiceID:     1,
		StartTime:     slotAt(12, 30),
	})
	if err != nil {
		t.Fatal(err)
	}
	if !res.PaymentRequired {
		t.Fatal("expected payment_required=true")
	}
	if res.CheckoutURL != "https://sandbox.payhere.lk/pay/" {
		t.Fatalf("checkout url %q", res.CheckoutURL)
	}
	if res.Params["order_id"] != res.OrderID {
		t.Fatal("params order_id mismatch")
	}
	if res.Params["amount"] != "500.00" {
		t.Fatalf("amount %q", res.Params["amount"])
	}
	if res.Params["hash"] == "" {
		t.Fatal("missing integrity hash")
	}

	// Pending only: no appointment until the gateway notifies.
	if repo.appointmentCount() != 0 {
		t.Fatal("gateway mode created an appointment before payment")
	}
	p, err := repo.GetPaymentByOrderID(context.Background(), res.OrderID)
	if err != nil {
		t.Fatal(err)
	}
	if p.Status != "pending" {
		t.Fatalf("payment status = %q, want pending", p.Status)
	}
}

// Two customers race for the same slot. Exactly one wins.
func TestInitiateConcurrentSameSlot(t *testing.T) {
	repo := newFakeRepo()
	repo.addBarber(1, "Kasun")
	repo.addService(1, "Haircut", 15)

	uc := newInitiate(repo, nil)
	start := slotAt(14, 0)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), InitiateInput{
				CustomerName:  "Customer",
				CustomerPhone: "0770000000",
				BarberID:      1,
				ServiceID:     1,
				StartTime:     start,
			})
		}(i)
	}
	wg.Wait()

	var won, lost int
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		case httperr.IsBusiness(err, "slot_taken"):
			lost++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if won != 1 || lost != 1 {
		t.Fatalf("won=%d lost=%d, want exactly one of each", won, lost)
	}
	if repo.appointmentCount() != 1 {
		t.Fatalf("appointments = %d, want 1", repo.appointmentCount())
	}
}
