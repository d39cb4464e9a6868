package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"edumall_v1_202608/internal/api/dto"
	"edumall_v1_202608/internal/service"
)

// ==================== ProductController 商品控制器 ====================

// ProductController 商品控制器：后台维护 + 商城查询
type ProductController struct {
	productService *service.ProductService
}

// NewProductController 创建商品控制器
func NewProductController(productService *service.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

// ==================== 商城（公开） ====================

// Shop 商城列表，支持标签/分类/价格区间/文本搜索
// @Summary 商城列表
// @Tags Shop
// @Produce json
// @Param q query string false "搜索词"
// @Param category query string false "分类"
// @Param tags query []string false "标签"
// @Param min_price query int false "最低价(分)"
// @Param max_price query int false "最高价(分)"
// @Success 200 {object} dto.ShopListResponse
// @Router /shop [get]
func (ctl *ProductController) Shop(c *gin.Context) {
	var req dto.ShopQueryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	resp, err := ctl.productService.ListShop(c.Request.Context(), &req)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, resp)
}

// Get 商品详情（公开）
// @Summary 商品详情
// @Tags Shop
// @Produce json
// @Param id path int true "商品 ID"
// @Success 200 {object} dto.ProductInfo
// @Failure 404 {object} map[string]interface{}
// @Router /products/{id} [get]
func (ctl *ProductController) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "ID 不合法")
		return
	}

	info, err := ctl.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, info)
}

// ==================== 后台维护（管理员） ====================

// ListAdmin 后台商品列表（含未上架）
// @Summary 后台商品列表
// @Tags Products
// @Produce json
// @Success 200 {object} dto.ShopListResponse
// @Failure 403 {object} map[string]interface{}
// @Router /products [get]
func (ctl *ProductController) ListAdmin(c *gin.Context) {
	var req dto.ShopQueryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	resp, err := ctl.productService.ListAdmin(c.Request.Context(), &req)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, resp)
}

// Create 创建商品
// @Summary 创建商品
// @Tags Products
// @Accept json
// @Produce json
// @Param request body dto.SaveProductRequest true "商品信息"
// @Success 201 {object} dto.ProductInfo
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /products [post]
func (ctl *ProductController) Create(c *gin.Context) {
	var req dto.SaveProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	info, err := ctl.productService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, info)
}

// Update 更新商品（变体整组重建）
// @Summary 更新商品
// @Tags Products
// @Accept json
// @Produce json
// @Param id path int true "商品 ID"
// @Param request body dto.SaveProductRequest true "商品信息"
// @Success 200 {object} dto.ProductInfo
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /products/{id} [put]
func (ctl *ProductController) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "ID 不合法")
		return
	}

	var req dto.SaveProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	info, err := ctl.productService.UpdateProduct(c.Request.Context(), id, &req)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, info)
}

// Delete 删除商品
// @Summary 删除商品
// @Tags Products
// @Produce json
// @Param id path int true "商品 ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /products/{id} [delete]
func (ctl *ProductController) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "ID 不合法")
		return
	}

	if err := ctl.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		Fail(c, err)
		return
	}
	OK(c, nil)
}
