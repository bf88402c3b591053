package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Provider --dir ../domain/playerweek --output domain/playerweek --outpkg playerweekmock --filename provider_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Provider --dir ../domain/game --output domain/game --outpkg gamemock --filename provider_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name FeatureWriter --dir ../usecase --output usecase --outpkg usecasemock --filename feature_writer_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name FeatureStore --dir ../usecase --output usecase --outpkg usecasemock --filename feature_store_mock.go
