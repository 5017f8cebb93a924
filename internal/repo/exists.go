package repo

import "gorm.io/gorm"

// exists settles a zero-row update: some drivers (MySQL without
// clientFoundRows) report 0 for a matched row whose values did not change.
func exists(q *gorm.DB, id int64) (bool, error) {
	var n int64
	if err := q.Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
