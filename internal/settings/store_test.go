package settings

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vitalis-app/cputray/internal/models"
)

func TestReadReturnsCopy(t *testing.T) {
	store := NewStore(models.DefaultSettings())

	s := store.Read()
	s.RefreshInterval = 99
	assert.Equal(t, 3, store.Read().RefreshInterval)
}

func TestWriteNormalizes(t *testing.T) {
	store := NewStore(models.DefaultSettings())

	next := models.DefaultSettings()
	next.RefreshInterval = 0
	fixed := store.Write(next)

	assert.Equal(t, []string{"refresh_interval"}, fixed)
	assert.Equal(t, 3, store.Read().RefreshInterval)
}

func TestChangedCoalesces(t *testing.T) {
	store := NewStore(models.DefaultSettings())
	store.Write(models.DefaultSettings())
	store.Write(models.DefaultSettings())

	select {
	case <-store.Changed():
	default:
		t.Fatal("expected change notification")
	}
	select {
	case <-store.Changed():
		t.Fatal("writes should coalesce into one notification")
	default:
	}
}

// Every field of a and b differs, so a torn read would match neither.
func TestConcurrentReadsNeverTorn(t *testing.T) {
	a := models.AppSettings{
		AutoRefresh: true, RefreshInterval: 1, TrayShowProcess: true, TrayShowPercentage: true,
		TrayDisplayMode: models.DisplayAlways, HighCPUAlertEnabled: true,
		HighCPUThreshold: 10, HighCPUDuration: 1, EnableHighCPUPopup: true,
	}
	b := models.AppSettings{
		AutoRefresh: false, RefreshInterval: 2, TrayShowProcess: false, TrayShowPercentage: false,
		TrayDisplayMode: models.DisplayWarningOnly, HighCPUAlertEnabled: false,
		HighCPUThreshold: 20, HighCPUDuration: 2, EnableHighCPUPopup: false,
	}
	store := NewStore(a)

	var wg sync.WaitGroup
	stop := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
			}
			if i%2 == 0 {
				store.Write(b)
			} else {
				store.Write(a)
			}
		}
	}()

	for i := 0; i < 10000; i++ {
		got := store.Read()
		if got != a && got != b {
			close(stop)
			wg.Wait()
			t.Fatalf("torn read: %+v", got)
		}
	}
	close(stop)
	wg.Wait()
}
