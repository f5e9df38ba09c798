package cron

import (
	"fmt"
	"time"

	"github.com/sahilchouksey/edulisting-api/model"
)

// SweepExpiredOTPs drops OTP entries whose expiry already passed. The
// per-entry timers normally remove these; the sweep catches timers lost to
// timer goroutine starvation or clock jumps.
func (m *CronManager) SweepExpiredOTPs() {
	removed := m.otpStore.Sweep()
	m.logJobComplete("sweep_expired_otps", fmt.Sprintf("Removed %d expired OTP entries", removed))
}

// AuditDanglingReferences counts denormalized ID-list entries that point at
// missing or soft-deleted rows. Nothing is cleaned up: readers must tolerate
// dangling references, this job only surfaces how many exist.
func (m *CronManager) AuditDanglingReferences() {
	dangling := 0

	count, err := m.auditIDLists()
	if err != nil {
		m.logJobError("audit_dangling_references", err)
		return
	}
	dangling += count

	m.logJobComplete("audit_dangling_references",
		fmt.Sprintf("Found %d dangling ID-list references", dangling))
}

func (m *CronManager) auditIDLists() (int, error) {
	dangling := 0

	liveIDs := func(model interface{}) (map[int64]bool, error) {
		var ids []int64
		if err := m.db.Model(model).Pluck("id", &ids).Error; err != nil {
			return nil, err
		}
		set := make(map[int64]bool, len(ids))
		for _, id := range ids {
			set[id] = true
		}
		return set, nil
	}

	countMissing := func(lists []model.IDList, live map[int64]bool) int {
		missing := 0
		for _, list := range lists {
			for _, id := range list {
				if !live[id] {
					missing++
				}
			}
		}
		return missing
	}

	// University approval lists → approvals table
	approvals, err := liveIDs(&model.Approval{})
	if err != nil {
		return 0, err
	}
	var approvalLists []model.IDList
	if err := m.db.Model(&model.UniversityApprovals{}).Pluck("approval_ids", &approvalLists).Error; err != nil {
		return 0, err
	}
	dangling += countMissing(approvalLists, approvals)

	// University partner lists → placements table
	placements, err := liveIDs(&model.Placement{})
	if err != nil {
		return 0, err
	}
	var partnerLists []model.IDList
	if err := m.db.Model(&model.UniversityPartners{}).Pluck("placement_ids", &partnerLists).Error; err != nil {
		return 0, err
	}
	dangling += countMissing(partnerLists, placements)

	// Course/program university lists → universities table
	universities, err := liveIDs(&model.University{})
	if err != nil {
		return 0, err
	}
	var courseLists []model.IDList
	if err := m.db.Model(&model.Course{}).Pluck("university_ids", &courseLists).Error; err != nil {
		return 0, err
	}
	dangling += countMissing(courseLists, universities)

	var programLists []model.IDList
	if err := m.db.Model(&model.Program{}).Pluck("university_ids", &programLists).Error; err != nil {
		return 0, err
	}
	dangling += countMissing(programLists, universities)

	return dangling, nil
}

// CleanupOldCronLogs hard-deletes cron job logs older than 30 days.
func (m *CronManager) CleanupOldCronLogs() {
	cutoff := time.Now().AddDate(0, 0, -30)

	result := m.db.Unscoped().
		Where("created_at < ?", cutoff).
		Delete(&model.CronJobLog{})
	if result.Error != nil {
		m.logJobError("cleanup_cron_logs", result.Error)
		return
	}

	m.logJobComplete("cleanup_cron_logs",
		fmt.Sprintf("Deleted %d cron logs older than 30 days", result.RowsAffected))
}
