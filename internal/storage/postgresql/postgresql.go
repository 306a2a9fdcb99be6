package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/limloop/limloop/internal/constants"
	"github.com/limloop/limloop/internal/logger"
	"github.com/limloop/limloop/internal/models"
	"github.com/limloop/limloop/internal/storage"
	"go.uber.org/zap"
)

func dbMigrate(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		logger.Log.Error("db driver error on migration", zap.Error(err))
		return err
	}
	m, err := migrate.NewWithDatabaseInstance("file://db/migrations", "postgres", driver)
	if err != nil {
		logger.Log.Error("migration instance creation error on migration", zap.Error(err))
		return err
	}
	_, dirty, err := m.Version()
	if err != nil {
		switch err {
		case migrate.ErrNilVersion:
			logger.Log.Info("no migration was applied yet - first migration")
		default:
			logger.Log.Error("checking database dirty on migration error", zap.Error(err))
			return err
		}
	}
	if dirty {
		logger.Log.Error("migration - database is in dirty state")
		return err
	}
	err = m.Up()
	if err != nil {
		switch err {
		case migrate.ErrNoChange:
			logger.Log.Info("migration - db version is up to date")
			return nil
		default:
			logger.Log.Error("db migration error", zap.Error(err))
			return err
		}
	}
	return nil
}

type PsqlStorage struct {
	dbAddress  string
	connection *sql.DB
}

func NewPsqlStorage(dba string) *PsqlStorage {
	return &PsqlStorage{dbAddress: dba}
}

func (s *PsqlStorage) InitStorage(ctx context.Context) error {
	db, err := sql.Open("pgx", s.dbAddress)
	if err != nil {
		logger.Log.Error("opening db connection error", zap.Error(err))
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	err = db.PingContext(ctx)
	if err != nil {
		logger.Log.Error("db ping err", zap.Error(err))
		return err
	}
	err = dbMigrate(db)
	if err != nil {
		return err
	}
	s.connection = db
	logger.Log.Info("db connection is ready")
	return nil
}

func (s *PsqlStorage) AddUser(ctx context.Context, user *models.User) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	var id int64
	err := s.connection.QueryRowContext(ctx,
		"INSERT INTO users (name,email,phone,address,pwdhash) VALUES($1,$2,$3,$4,$5) RETURNING id",
		user.Name, user.Email, user.Phone, user.Address, user.Password).Scan(&id)
	if err != nil {
		logger.Log.Error("add user error - db inserting failed", zap.Error(err))
		return 0, err
	}
	return id, nil
}

func (s *PsqlStorage) IsEmailFree(ctx context.Context, email string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := s.connection.QueryContext(ctx,
		"SELECT id FROM users WHERE email = $1", email)
	if err != nil {
		logger.Log.Error("is email free error - db getting email rows failed", zap.Error(err))
		return true, err
	}
	defer rows.Close()

	if rows.Next() {
		return false, nil
	}
	if rows.Err() != nil {
		logger.Log.Error("is email free error - rows iterating error", zap.Error(rows.Err()))
		return true, rows.Err()
	}
	return true, nil
}

func (s *PsqlStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	row := s.connection.QueryRowContext(ctx,
		"SELECT id,name,email,phone,address,pwdhash FROM users WHERE email = $1", email)
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Phone, &user.Address, &user.Password)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Log.Error("get user by email error - db row scan error", zap.Error(err))
		return nil, err
	}
	return &user, nil
}

func (s *PsqlStorage) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	row := s.connection.QueryRowContext(ctx,
		"SELECT id,name,email,phone,address,pwdhash FROM users WHERE id = $1", id)
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Phone, &user.Address, &user.Password)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Log.Error("get user by id error - db row scan error", zap.Error(err))
		return nil, err
	}
	return &user, nil
}

func (s *PsqlStorage) UpdateUser(ctx context.Context, user *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	tx, err := s.connection.Begin()
	if err != nil {
		logger.Log.Error("update user error - transaction open failed", zap.Error(err))
		return err
	}
	_, err = tx.ExecContext(ctx,
		"UPDATE users SET name = $1, phone = $2, address = $3 WHERE id = $4",
		user.Name, user.Phone, user.Address, user.ID)
	if err != nil {
		tx.Rollback()
		logger.Log.Error("update user error - db updating failed", zap.Error(err))
		return err
	}
	return tx.Commit()
}

func (s *PsqlStorage) UpdateUserPassword(ctx context.Context, id int64, pwdHash string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	tx, err := s.connection.Begin()
	if err != nil {
		logger.Log.Error("update user password error - transaction open failed", zap.Error(err))
		return err
	}
	_, err = tx.ExecContext(ctx,
		"UPDATE users SET pwdhash = $1 WHERE id = $2", pwdHash, id)
	if err != nil {
		tx.Rollback()
		logger.Log.Error("update user password error - db updating failed", zap.Error(err))
		return err
	}
	return tx.Commit()
}

func (s *PsqlStorage) AddBalance(ctx context.Context, balance *models.PointsBalance) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	tx, err := s.connection.Begin()
	if err != nil {
		logger.Log.Error("add balance error - transaction open failed", zap.Error(err))
		return err
	}
	_, err = tx.ExecContext(ctx,
		"INSERT INTO balance (id,user_id,current,redeemed) VALUES($1,$2,$3,$4)",
		balance.ID, balance.UserID, balance.Current, balance.Redeemed)
	if err != nil {
		tx.Rollback()
		logger.Log.Error("add balance error - db inserting failed", zap.Error(err))
		return err
	}
	return tx.Commit()
}

func (s *PsqlStorage) GetBalanceByUserID(ctx context.Context, uid int64) (*models.PointsBalance, error) {
	var balance models.PointsBalance
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	row := s.connection.QueryRowContext(ctx,
		"SELECT id,user_id,current,redeemed FROM balance WHERE user_id = $1", uid)
	err := row.Scan(&balance.ID, &balance.UserID, &balance.Current, &balance.Redeemed)
	if err != nil {
		logger.Log.Error("get balance by user id error - db row scan error", zap.Error(err))
		return nil, err
	}
	return &balance, nil
}

func (s *PsqlStorage) FinishOrder(ctx context.Context, id int64, uid int64, points int) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	tx, err := s.connection.Begin()
	if err != nil {
		logger.Log.Error("finish order error - transaction open failed", zap.Error(err))
		return err
	}
	_, err = tx.ExecContext(ctx,
		"UPDATE orders SET status = $1, points = $2 WHERE id = $3",
		constants.StatusProcessedOrder, points, id)
	if err != nil {
		tx.Rollback()
		logger.Log.Error("finish order error - order updating failed", zap.Error(err))
		return err
	}
	_, err = tx.ExecContext(ctx,
		"UPDATE balance SET current = current + $1 WHERE user_id = $2",
		points, uid)
	if err != nil {
		tx.Rollback()
		logger.Log.Error("finish order error - balance crediting failed", zap.Error(err))
		return err
	}
	return tx.Commit()
}

func (s *PsqlStorage) GetTypes(ctx context.Context) ([]models.MaterialType, error) {
	types := []models.MaterialType{}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := s.connection.QueryContext(ctx,
		"SELECT id,name,description,image_url,points_per_kg FROM types ORDER BY id")
	if err != nil {
		logger.Log.Error("get types error - query error", zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var t models.MaterialType
		err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.ImageURL, &t.PointsPerKg)
		if err != nil {
			logger.Log.Error("get types error - scan error", zap.Error(err))
			return nil, err
		}
		types = append(types, t)
	}
	if rows.Err() != nil {
		logger.Log.Error("get types error - iteration error", zap.Error(rows.Err()))
		return nil, rows.Err()
	}
	return types, nil
}

func (s *PsqlStorage) GetTypeByID(ctx context.Context, id int64) (*models.MaterialType, error) {
	var t models.MaterialType
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	row := s.connection.QueryRowContext(ctx,
		"SELECT id,name,description,image_url,points_per_kg FROM types WHERE id = $1", id)
	err := row.Scan(&t.ID, &t.Name, &t.Description, &t.ImageURL, &t.PointsPerKg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Log.Error("get type by id error - db row scan error", zap.Error(err))
		return nil, err
	}
	return &t, nil
}

func (s *PsqlStorage) GetTypeByName(ctx context.Context, name string) (*models.MaterialType, error) {
	var t models.MaterialType
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	row := s.connection.QueryRowContext(ctx,
		"SELECT id,name,description,image_url,points_per_kg FROM types WHERE name = $1", name)
	err := row.Scan(&t.ID, &t.Name, &t.Description, &t.ImageURL, &t.PointsPerKg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Log.Error("get type by name error - db row scan error", zap.Error(err))
		return nil, err
	}
	return &t, nil
}

func (s *PsqlStorage) centerDetails(ctx context.Context, center *models.Center) error {
	wtRows, err := s.connection.QueryContext(ctx,
		"SELECT day,start_time,end_time FROM center_working_times WHERE center_id = $1 ORDER BY id", center.ID)
	if err != nil {
		logger.Log.Error("get center details error - working times query error", zap.Error(err))
		return err
	}
	defer wtRows.Close()
	for wtRows.Next() {
		var wt models.WorkingTime
		if err := wtRows.Scan(&wt.Day, &wt.StartTime, &wt.EndTime); err != nil {
			logger.Log.Error("get center details error - working times scan error", zap.Error(err))
			return err
		}
		center.WorkingTimes = append(center.WorkingTimes, wt)
	}
	if wtRows.Err() != nil {
		logger.Log.Error("get center details error - working times iteration error", zap.Error(wtRows.Err()))
		return wtRows.Err()
	}

	mRows, err := s.connection.QueryContext(ctx,
		"SELECT name,points,is_hazardous FROM center_materials WHERE center_id = $1 ORDER BY id", center.ID)
	if err != nil {
		logger.Log.Error("get center details error - materials query error", zap.Error(err))
		return err
	}
	defer mRows.Close()
	for mRows.Next() {
		var m models.CenterMaterial
		if err := mRows.Scan(&m.Name, &m.Points, &m.IsHazardous); err != nil {
			logger.Log.Error("get center details error - materials scan error", zap.Error(err))
			return err
		}
		center.Materials = append(center.Materials, m)
	}
	if mRows.Err() != nil {
		logger.Log.Error("get center details error - materials iteration error", zap.Error(mRows.Err()))
		return mRows.Err()
	}
	return nil
}

func (s *PsqlStorage) GetCenters(ctx context.Context) ([]models.Center, error) {
	centers := []models.Center{}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := s.connection.QueryContext(ctx,
		"SELECT id,name,address,image_url,contact_tel,contact_email,contact_other FROM centers ORDER BY id")
	if err != nil {
		logger.Log.Error("get centers error - query error", zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var c models.Center
		err := rows.Scan(&c.ID, &c.Name, &c.Address, &c.ImageURL, &c.Contact.Tel, &c.Contact.Email, &c.Contact.Other)
		if err != nil {
			logger.Log.Error("get centers error - scan error", zap.Error(err))
			return nil, err
		}
		centers = append(centers, c)
	}
	if rows.Err() != nil {
		logger.Log.Error("get centers error - iteration error", zap.Error(rows.Err()))
		return nil, rows.Err()
	}
	for i := range centers {
		if err := s.centerDetails(ctx, &centers[i]); err != nil {
			return nil, err
		}
	}
	return centers, nil
}

func (s *PsqlStorage) GetCenterByID(ctx context.Context, id int64) (*models.Center, error) {
	var c models.Center
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	row := s.connection.QueryRowContext(ctx,
		"SELECT id,name,address,image_url,contact_tel,contact_email,contact_other FROM centers WHERE id = $1", id)
	err := row.Scan(&c.ID, &c.Name, &c.Address, &c.ImageURL, &c.Contact.Tel, &c.Contact.Email, &c.Contact.Other)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Log.Error("get center by id error - db row scan error", zap.Error(err))
		return nil, err
	}
	if err := s.centerDetails(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *PsqlStorage) AddOrder(ctx context.Context, o *models.Order) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	tx, err := s.connection.Begin()
	if err != nil {
		logger.Log.Error("add order error - transaction open failed", zap.Error(err))
		return 0, err
	}
	var centerID sql.NullInt64
	if o.CenterID != 0 {
		centerID = sql.NullInt64{Int64: o.CenterID, Valid: true}
	}
	var receiveDate sql.NullTime
	if o.ReceiveDate != nil {
		receiveDate = sql.NullTime{Time: *o.ReceiveDate, Valid: true}
	}
	var id int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO orders (customer_id,center_id,transport,status,note,receive_date,schedule,total_weight,points,created_at)
		VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10) RETURNING id`,
		o.CustomerID, centerID, o.Transport, o.Status, o.Note, receiveDate, o.Schedule, o.TotalWeight, o.Points, o.CreatedAt).Scan(&id)
	if err != nil {
		tx.Rollback()
		logger.Log.Error("add order error - db inserting failed", zap.Error(err))
		return 0, err
	}
	for _, item := range o.Items {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO order_items (order_id,type_name,quantity) VALUES($1,$2,$3)",
			id, item.TypeName, item.Quantity)
		if err != nil {
			tx.Rollback()
			logger.Log.Error("add order error - db item inserting failed", zap.Error(err))
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	o.ID = id
	return id, nil
}

func (s *PsqlStorage) scanOrder(row *sql.Rows, o *models.Order) error {
	var centerID sql.NullInt64
	var receiveDate sql.NullTime
	err := row.Scan(&o.ID, &o.CustomerID, &centerID, &o.Transport, &o.Status, &o.Note,
		&receiveDate, &o.Schedule, &o.TotalWeight, &o.Points, &o.CreatedAt)
	if err != nil {
		return err
	}
	if centerID.Valid {
		o.CenterID = centerID.Int64
	}
	if receiveDate.Valid {
		t := receiveDate.Time
		o.ReceiveDate = &t
	}
	return nil
}

func (s *PsqlStorage) orderItems(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	items := []models.OrderItem{}
	rows, err := s.connection.QueryContext(ctx,
		"SELECT type_name,quantity FROM order_items WHERE order_id = $1 ORDER BY id", orderID)
	if err != nil {
		logger.Log.Error("get order items error - query error", zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.TypeName, &item.Quantity); err != nil {
			logger.Log.Error("get order items error - scan error", zap.Error(err))
			return nil, err
		}
		items = append(items, item)
	}
	if rows.Err() != nil {
		logger.Log.Error("get order items error - iteration error", zap.Error(rows.Err()))
		return nil, rows.Err()
	}
	return items, nil
}

func (s *PsqlStorage) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := s.connection.QueryContext(ctx,
		`SELECT id,customer_id,center_id,transport,status,note,receive_date,schedule,total_weight,points,created_at
		FROM orders WHERE id = $1`, id)
	if err != nil {
		logger.Log.Error("get order by id error - query error", zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	if !rows.Next() {
		if rows.Err() != nil {
			logger.Log.Error("get order by id error - iteration error", zap.Error(rows.Err()))
			return nil, rows.Err()
		}
		return nil, nil
	}
	var o models.Order
	if err := s.scanOrder(rows, &o); err != nil {
		logger.Log.Error("get order by id error - scan error", zap.Error(err))
		return nil, err
	}
	rows.Close()
	o.Items, err = s.orderItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *PsqlStorage) GetOrders(ctx context.Context, uid int64) ([]models.Order, error) {
	orders := []models.Order{}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := s.connection.QueryContext(ctx,
		`SELECT id,customer_id,center_id,transport,status,note,receive_date,schedule,total_weight,points,created_at
		FROM orders WHERE customer_id = $1 ORDER BY created_at DESC`, uid)
	if err != nil {
		logger.Log.Error("get orders error - query error", zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var o models.Order
		if err := s.scanOrder(rows, &o); err != nil {
			logger.Log.Error("get orders error - scan error", zap.Error(err))
			return nil, err
		}
		orders = append(orders, o)
	}
	if rows.Err() != nil {
		logger.Log.Error("get orders error - iteration error", zap.Error(rows.Err()))
		return nil, rows.Err()
	}
	rows.Close()
	for i := range orders {
		orders[i].Items, err = s.orderItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (s *PsqlStorage) UpdateOrderStatus(ctx context.Context, id int64, st string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	tx, err := s.connection.Begin()
	if err != nil {
		logger.Log.Error("update order status error - transaction open failed", zap.Error(err))
		return err
	}
	_, err = tx.ExecContext(ctx,
		"UPDATE orders SET status = $1 WHERE id = $2", st, id)
	if err != nil {
		tx.Rollback()
		logger.Log.Error("update order status error - db updating failed", zap.Error(err))
		return err
	}
	return tx.Commit()
}

func (s *PsqlStorage) AddOrderDelayed(ctx context.Context, id int64, uid int64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	tx, err := s.connection.Begin()
	if err != nil {
		logger.Log.Error("add order delayed error - transaction open failed", zap.Error(err))
		return err
	}
	_, err = tx.ExecContext(ctx,
		"INSERT INTO orders_delayed (order_id,user_id) VALUES($1,$2)", id, uid)
	if err != nil {
		tx.Rollback()
		logger.Log.Error("add order delayed error - db inserting failed", zap.Error(err))
		return err
	}
	return tx.Commit()
}

func (s *PsqlStorage) GetOrdersDelayed(ctx context.Context, lim int) ([]models.OrderDelayed, error) {
	delayed := []models.OrderDelayed{}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := s.connection.QueryContext(ctx,
		"SELECT order_id,user_id FROM orders_delayed LIMIT $1", lim)
	if err != nil {
		logger.Log.Error("get orders delayed error - query error", zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var d models.OrderDelayed
		if err := rows.Scan(&d.OrderID, &d.UserID); err != nil {
			logger.Log.Error("get orders delayed error - scan error", zap.Error(err))
			return nil, err
		}
		delayed = append(delayed, d)
	}
	if rows.Err() != nil {
		logger.Log.Error("get orders delayed error - iteration error", zap.Error(rows.Err()))
		return nil, rows.Err()
	}
	return delayed, nil
}

func (s *PsqlStorage) DeleteOrderDelayed(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	tx, err := s.connection.Begin()
	if err != nil {
		logger.Log.Error("delete order delayed error - transaction open failed", zap.Error(err))
		return err
	}
	_, err = tx.ExecContext(ctx,
		"DELETE FROM orders_delayed WHERE order_id = $1", id)
	if err != nil {
		tx.Rollback()
		logger.Log.Error("delete order delayed error - db deleting failed", zap.Error(err))
		return err
	}
	return tx.Commit()
}

func (s *PsqlStorage) GetRecycleStats(ctx context.Context, uid int64) ([]models.RecycleStat, error) {
	stats := []models.RecycleStat{}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := s.connection.QueryContext(ctx,
		`SELECT i.type_name,
			SUM(i.quantity)::float8 AS total_kg,
			100.0 * SUM(i.quantity) / SUM(SUM(i.quantity)) OVER () AS percentage
		FROM order_items i
		JOIN orders o ON o.id = i.order_id
		WHERE o.customer_id = $1 AND o.status = $2
		GROUP BY i.type_name
		ORDER BY total_kg DESC, i.type_name`, uid, constants.StatusProcessedOrder)
	if err != nil {
		logger.Log.Error("get recycle stats error - query error", zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var st models.RecycleStat
		if err := rows.Scan(&st.Category, &st.TotalKg, &st.Percentage); err != nil {
			logger.Log.Error("get recycle stats error - scan error", zap.Error(err))
			return nil, err
		}
		stats = append(stats, st)
	}
	if rows.Err() != nil {
		logger.Log.Error("get recycle stats error - iteration error", zap.Error(rows.Err()))
		return nil, rows.Err()
	}
	return stats, nil
}

func (s *PsqlStorage) GetRewards(ctx context.Context) ([]models.Reward, error) {
	rewards := []models.Reward{}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := s.connection.QueryContext(ctx,
		"SELECT id,name,image_url,cost,stock FROM rewards ORDER BY id")
	if err != nil {
		logger.Log.Error("get rewards error - query error", zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var rw models.Reward
		if err := rows.Scan(&rw.ID, &rw.Name, &rw.ImageURL, &rw.Cost, &rw.Stock); err != nil {
			logger.Log.Error("get rewards error - scan error", zap.Error(err))
			return nil, err
		}
		rewards = append(rewards, rw)
	}
	if rows.Err() != nil {
		logger.Log.Error("get rewards error - iteration error", zap.Error(rows.Err()))
		return nil, rows.Err()
	}
	return rewards, nil
}

func (s *PsqlStorage) GetRewardByID(ctx context.Context, id int64) (*models.Reward, error) {
	var rw models.Reward
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	row := s.connection.QueryRowContext(ctx,
		"SELECT id,name,image_url,cost,stock FROM rewards WHERE id = $1", id)
	err := row.Scan(&rw.ID, &rw.Name, &rw.ImageURL, &rw.Cost, &rw.Stock)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Log.Error("get reward by id error - db row scan error", zap.Error(err))
		return nil, err
	}
	return &rw, nil
}

func (s *PsqlStorage) RedeemReward(ctx context.Context, redemption *models.Redemption) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	tx, err := s.connection.Begin()
	if err != nil {
		logger.Log.Error("redeem reward error - transaction open failed", zap.Error(err))
		return err
	}
	res, err := tx.ExecContext(ctx,
		"UPDATE balance SET current = current - $1, redeemed = redeemed + $1 WHERE user_id = $2 AND current >= $1",
		redemption.Cost, redemption.UserID)
	if err != nil {
		tx.Rollback()
		logger.Log.Error("redeem reward error - balance updating failed", zap.Error(err))
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		tx.Rollback()
		return err
	}
	if n == 0 {
		tx.Rollback()
		return storage.ErrInsufficientPoints
	}
	res, err = tx.ExecContext(ctx,
		"UPDATE rewards SET stock = stock - 1 WHERE id = $1 AND stock > 0", redemption.RewardID)
	if err != nil {
		tx.Rollback()
		logger.Log.Error("redeem reward error - stock updating failed", zap.Error(err))
		return err
	}
	n, err = res.RowsAffected()
	if err != nil {
		tx.Rollback()
		return err
	}
	if n == 0 {
		tx.Rollback()
		return storage.ErrRewardOutOfStock
	}
	_, err = tx.ExecContext(ctx,
		"INSERT INTO redemptions (id,user_id,reward_id,reward_name,cost,processed_at) VALUES($1,$2,$3,$4,$5,$6)",
		redemption.ID, redemption.UserID, redemption.RewardID, redemption.RewardName, redemption.Cost, redemption.ProcessedAt)
	if err != nil {
		tx.Rollback()
		logger.Log.Error("redeem reward error - db inserting failed", zap.Error(err))
		return err
	}
	return tx.Commit()
}

func (s *PsqlStorage) GetRedemptions(ctx context.Context, uid int64) ([]models.Redemption, error) {
	redemptions := []models.Redemption{}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := s.connection.QueryContext(ctx,
		"SELECT id,user_id,reward_id,reward_name,cost,processed_at FROM redemptions WHERE user_id = $1 ORDER BY processed_at DESC", uid)
	if err != nil {
		logger.Log.Error("get redemptions error - query error", zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var rd models.Redemption
		if err := rows.Scan(&rd.ID, &rd.UserID, &rd.RewardID, &rd.RewardName, &rd.Cost, &rd.ProcessedAt); err != nil {
			logger.Log.Error("get redemptions error - scan error", zap.Error(err))
			return nil, err
		}
		redemptions = append(redemptions, rd)
	}
	if rows.Err() != nil {
		logger.Log.Error("get redemptions error - iteration error", zap.Error(rows.Err()))
		return nil, rows.Err()
	}
	return redemptions, nil
}

func (s *PsqlStorage) DBClose() error {
	return s.connection.Close()
}
