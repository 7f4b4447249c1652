package plans

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/studyguide-backend/internal/data/repos/testutil"
	types "github.com/yungbote/studyguide-backend/internal/domain"
	"github.com/yungbote/studyguide-backend/internal/platform/dbctx"
)

func TestStudyPlanRepo(t *testing.T) {
	db := testutil.DB(t)
	repo := NewStudyPlanRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background()}

	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	var ids []uuid.UUID
	for i, subject := range []string{"Biology", "Calculus", "History"} {
		rec, err := repo.Create(dbc, &types.StudyPlanRecord{
			Subject:     subject,
			HoursPerDay: 2,
			TotalDays:   7,
			TopicCount:  6,
			Plan:        datatypes.JSON([]byte(`{"subject":"` + subject + `"}`)),
			GeneratedAt: base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if rec.ID == uuid.Nil {
			t.Fatalf("expected generated id")
		}
		ids = append(ids, rec.ID)
	}

	recent, err := repo.ListRecent(dbc, 2)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(recent) != 2 || recent[0].Subject != "History" || recent[1].Subject != "Calculus" {
		t.Fatalf("unexpected order: %+v", recent)
	}
	if len(recent[0].Plan) != 0 {
		t.Fatalf("list should not load plan bodies")
	}

	got, err := repo.GetByID(dbc, ids[0])
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.Subject != "Biology" || string(got.Plan) != `{"subject":"Biology"}` {
		t.Fatalf("unexpected record: %+v", got)
	}

	missing, err := repo.GetByID(dbc, uuid.New())
	if err != nil || missing != nil {
		t.Fatalf("expected nil, nil for missing id, got %+v, %v", missing, err)
	}
}
