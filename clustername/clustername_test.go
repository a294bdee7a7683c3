package clustername

import "testing"

func TestGenerateNameMatchesServiceNameGrammar(t *testing.T) {
	got := GenerateName(User(17), 3)
	want := "cluster-u17-replica-3"
	if got != want {
		t.Fatalf("GenerateName(User(17), 3) = %q, want %q", got, want)
	}
}

func TestParseNameInvertsGenerateName(t *testing.T) {
	instanceID, replicaID, err := ParseName("cluster-u17-replica-3")
	if err != nil {
		t.Fatalf("ParseName returned unexpected error: %v", err)
	}
	if instanceID != User(17) {
		t.Errorf("instanceID = %+v, want %+v", instanceID, User(17))
	}
	if replicaID != 3 {
		t.Errorf("replicaID = %d, want 3", replicaID)
	}
}

func TestParseNameAcceptsSystemInstances(t *testing.T) {
	instanceID, replicaID, err := ParseName("cluster-s9-replica-0")
	if err != nil {
		t.Fatalf("ParseName returned unexpected error: %v", err)
	}
	if instanceID != System(9) {
		t.Errorf("instanceID = %+v, want %+v", instanceID, System(9))
	}
	if replicaID != 0 {
		t.Errorf("replicaID = %d, want 0", replicaID)
	}
}

func TestParseNameRejectsInvalidInstanceTag(t *testing.T) {
	_, _, err := ParseName("cluster-x1-replica-1")
	if err == nil {
		t.Fatal("expected ParseName to reject an invalid instance tag, got nil error")
	}
	var invalid *InvalidServiceNameError
	if !asInvalidServiceNameError(err, &invalid) {
		t.Fatalf("expected *InvalidServiceNameError, got %T: %v", err, err)
	}
}

func TestParseNameRejectsUnrelatedStrings(t *testing.T) {
	for _, s := range []string{
		"",
		"cluster-u1-replica-",
		"cluster-u1-replic-2",
		"cluster-u-replica-2",
		"random-service-name",
	} {
		if _, _, err := ParseName(s); err == nil {
			t.Errorf("ParseName(%q) = nil error, want InvalidServiceNameError", s)
		}
	}
}

func TestGenerateNameThenParseNameRoundTrips(t *testing.T) {
	for _, tc := range []struct {
		instanceID InstanceID
		replicaID  ReplicaID
	}{
		{User(0), 0},
		{User(42), 7},
		{System(1), 100},
	} {
		name := GenerateName(tc.instanceID, tc.replicaID)
		gotInstance, gotReplica, err := ParseName(name)
		if err != nil {
			t.Fatalf("ParseName(%q) returned unexpected error: %v", name, err)
		}
		if gotInstance != tc.instanceID || gotReplica != tc.replicaID {
			t.Errorf("round trip of %+v/%d through %q gave %+v/%d", tc.instanceID, tc.replicaID, name, gotInstance, gotReplica)
		}
	}
}

func asInvalidServiceNameError(err error, target **InvalidServiceNameError) bool {
	if e, ok := err.(*InvalidServiceNameError); ok {
		*target = e
		return true
	}
	return false
}
