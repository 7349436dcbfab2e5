package idhash

import "testing"

func TestComputeUploadID_Deterministic(t *testing.T) {
	a := ComputeUploadID("ride.fit", []byte{0x0E, 0x10, 0x43, 0x08})
	b := ComputeUploadID("ride.fit", []byte{0x0E, 0x10, 0x43, 0x08})

	if a != b {
		t.Errorf("same input must produce same id: %s != %s", a, b)
	}
	if a == "" {
		t.Error("id must not be empty")
	}
}

func TestComputeUploadID_SensitiveToInput(t *testing.T) {
	base := ComputeUploadID("ride.fit", []byte("payload"))

	if got := ComputeUploadID("run.fit", []byte("payload")); got == base {
		t.Error("different filename must change the id")
	}
	if got := ComputeUploadID("ride.fit", []byte("payload2")); got == base {
		t.Error("different payload must change the id")
	}
	// The separator keeps (name, payload) boundaries unambiguous.
	if got := ComputeUploadID("ride.fitp", []byte("ayload")); got == base {
		t.Error("boundary shift must change the id")
	}
}
