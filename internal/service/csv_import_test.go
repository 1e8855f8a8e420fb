package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"fleet-service/internal/model"
)

func newImportService(store *fakeTrips) *ImportService {
	return NewImportService(NewTripService(store))
}

func TestImportCSVMixedRows(t *testing.T) {
	store := newFakeTrips()
	svc := newImportService(store)
	caller := model.Principal{UserID: uuid.New(), Role: model.UserRoleUser}

	csv := strings.Join([]string{
		"booking_id,booking_date,origin_location,destination_location,revenue,transportation_distance_km,on_time",
		"BK-1,2024-03-01,Chennai,Pune,1200,550,true",
		",2024-03-02,Chennai,Pune,900,,false",
		"BK-2,2024-03-03,Delhi,Jaipur,abc,not-a-km,maybe",
		"BK-1,2024-03-04,Mumbai,Goa,100,200,",
	}, "\n")

	report, err := svc.ImportCSV(context.Background(), caller, strings.NewReader(csv))
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}

	if report.Imported != 2 {
		t.Fatalf("want 2 imported, got %d", report.Imported)
	}
	if report.Failed != 2 {
		t.Fatalf("want 2 failed, got %d", report.Failed)
	}
	if len(report.Errors) != 2 {
		t.Fatalf("want 2 row errors, got %+v", report.Errors)
	}
	// Line numbers are 1-based including the header.
	if report.Errors[0].Line != 3 {
		t.Fatalf("missing booking_id should fail on line 3, got %d", report.Errors[0].Line)
	}
	if report.Errors[1].Line != 5 {
		t.Fatalf("duplicate booking_id should fail on line 5, got %d", report.Errors[1].Line)
	}

	// Lenient fields on the otherwise valid row became absent, not errors.
	var bk2 *model.Trip
	for i := range store.created {
		if store.created[i].BookingID == "BK-2" {
			bk2 = &store.created[i]
		}
	}
	if bk2 == nil {
		t.Fatal("BK-2 should have been imported")
	}
	if bk2.Revenue != nil || bk2.DistanceKm != nil || bk2.OnTime != nil {
		t.Fatalf("unparsable optional fields should be absent: %+v", bk2)
	}
	if bk2.UserID != caller.UserID {
		t.Fatalf("imported rows must belong to the caller")
	}
}

func TestImportCSVMissingRequiredColumn(t *testing.T) {
	svc := newImportService(newFakeTrips())
	caller := model.Principal{UserID: uuid.New(), Role: model.UserRoleUser}

	csv := "booking_id,origin_location,destination_location\nBK-1,A,B\n"

	_, err := svc.ImportCSV(context.Background(), caller, strings.NewReader(csv))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput for missing booking_date column, got %v", err)
	}
}

func TestImportCSVEmptyFile(t *testing.T) {
	svc := newImportService(newFakeTrips())
	caller := model.Principal{UserID: uuid.New(), Role: model.UserRoleUser}

	_, err := svc.ImportCSV(context.Background(), caller, strings.NewReader(""))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput for empty file, got %v", err)
	}
}

func TestImportCSVIgnoresUnknownColumns(t *testing.T) {
	store := newFakeTrips()
	svc := newImportService(store)
	caller := model.Principal{UserID: uuid.New(), Role: model.UserRoleUser}

	csv := strings.Join([]string{
		"booking_id,booking_date,origin_location,destination_location,remarks",
		"BK-9,2024-07-01,Surat,Indore,left early",
	}, "\n")

	report, err := svc.ImportCSV(context.Background(), caller, strings.NewReader(csv))
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if report.Imported != 1 || report.Failed != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
}
