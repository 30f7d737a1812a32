package learning

// Review applies a status transition to the entry addressed by fingerprint
// and rewrites the log. Rules:
//
//   - promoted is terminal: a promoted entry accepts no further writes
//     through this path (promotion happens only via Promote);
//   - rejecting requires a non-empty reason;
//   - reverting to pending is allowed.
//
// On any validation failure the log file is left untouched.
func (s *Store) Review(source Source, fingerprint string, status Status, reason string) (*Entry, error) {
	if _, err := ParseStatus(string(status)); err != nil {
		return nil, err
	}
	if status == StatusPromoted {
		return nil, &ValidationError{Message: "entries are promoted via promote, not review"}
	}
	if status == StatusRejected && reason == "" {
		return nil, &ValidationError{Message: "rejecting an entry requires a reason"}
	}

	log, entry, err := s.findForUpdate(source, fingerprint)
	if err != nil {
		return nil, err
	}

	if entry.DisplayStatus() == StatusPromoted {
		return nil, &ValidationError{Message: "entry is already promoted; promoted is terminal"}
	}

	entry.Status = status
	entry.ReviewNote = reason

	if err := Save(s.Path(source), log); err != nil {
		return nil, err
	}
	return entry, nil
}
